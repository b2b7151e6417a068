package app

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/commands"
	"github.com/iov-one/barter/crypto"
	"github.com/iov-one/barter/x/escrow"
	"github.com/iov-one/barter/x/sigs"
	"github.com/iov-one/barter/x/token"
)

// ExampleChainID is the chain the signed examples are signed for.
const ExampleChainID = "test-123"

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	priv := crypto.PrivKeyEd25519FromSeed(make([]byte, 32))
	pub := priv.PublicKey()
	maker := pub.Address()
	taker := crypto.PrivKeyEd25519FromSeed(append(make([]byte, 31), 1)).PublicKey().Address()

	user := &sigs.UserData{
		Pubkey:   pub,
		Sequence: 17,
	}

	mintA := must(token.MintAddress(maker, "AAA"))
	mintB := must(token.MintAddress(maker, "BBB"))
	makerAtaA := must(token.AssociatedAddress(maker, mintA))
	makerAtaB := must(token.AssociatedAddress(maker, mintB))
	takerAtaA := must(token.AssociatedAddress(taker, mintA))
	takerAtaB := must(token.AssociatedAddress(taker, mintB))

	const seed = 123
	escrowAddr, bump, err := escrow.EscrowAddress(maker, seed)
	if err != nil {
		panic(err)
	}
	vault := must(escrow.VaultAddress(escrowAddr, mintA))

	offer := &escrow.Escrow{
		Seed:       seed,
		Maker:      maker,
		MintA:      mintA,
		MintB:      mintB,
		Receive:    90,
		UnlockTime: barter.UnixTime(1563000300),
		Bump:       bump,
	}
	makeMsg := &escrow.MakeMsg{
		Maker:       maker,
		MintA:       mintA,
		MintB:       mintB,
		MakerAtaA:   makerAtaA,
		Seed:        seed,
		Deposit:     40,
		Receive:     90,
		WaitingTime: 300,
	}
	takeMsg := &escrow.TakeMsg{
		Taker:     taker,
		Maker:     maker,
		MintA:     mintA,
		MintB:     mintB,
		TakerAtaA: takerAtaA,
		TakerAtaB: takerAtaB,
		MakerAtaB: makerAtaB,
		Escrow:    escrowAddr,
		Vault:     vault,
	}
	refundMsg := &escrow.RefundMsg{
		Maker:     maker,
		MintA:     mintA,
		MakerAtaA: makerAtaA,
		Escrow:    escrowAddr,
		Vault:     vault,
	}

	unsigned := NewTx(makeMsg)
	tx := NewTx(makeMsg)
	sig, err := sigs.SignTx(priv, tx, ExampleChainID, user.Sequence)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "pub_key", Obj: pub},
		{Filename: "user", Obj: user},
		{Filename: "escrow", Obj: offer},
		{Filename: "make_msg", Obj: makeMsg},
		{Filename: "take_msg", Obj: takeMsg},
		{Filename: "refund_msg", Obj: refundMsg},
		{Filename: "unsigned_tx", Obj: unsigned},
		{Filename: "signed_tx", Obj: tx},
	}
}

func must(addr barter.Address, err error) barter.Address {
	if err != nil {
		panic(err)
	}
	return addr
}
