package app

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/app"
	"github.com/iov-one/barter/commands/server"
	"github.com/iov-one/barter/crypto"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/x/escrow"
	"github.com/iov-one/barter/x/sigs"
	"github.com/iov-one/barter/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const chainID = "barter-test-chain"

type account struct {
	priv *crypto.PrivateKey
	seq  int64
}

func newAccount(seed byte) *account {
	s := make([]byte, 32)
	s[0] = seed
	return &account{priv: crypto.PrivKeyEd25519FromSeed(s)}
}

func (a *account) address() barter.Address {
	return a.priv.PublicKey().Address()
}

// sign returns a signed tx and advances the sequence like the chain does.
func (a *account) sign(t *testing.T, msg barter.Msg) []byte {
	t.Helper()
	tx := NewTx(msg)
	sig, err := sigs.SignTx(a.priv, tx, chainID, a.seq)
	require.NoError(t, err)
	a.seq++
	tx.Signatures = []*sigs.StdSignature{sig}
	bz, err := tx.Marshal()
	require.NoError(t, err)
	return bz
}

func genesis(t *testing.T, admin barter.Address, funded ...barter.Address) []byte {
	t.Helper()
	type wallet struct {
		Address barter.Address `json:"address"`
		Coins   []string       `json:"coins"`
	}
	var wallets []wallet
	for _, addr := range funded {
		wallets = append(wallets, wallet{Address: addr, Coins: []string{"1000 SOL"}})
	}
	state := map[string]interface{}{
		"cash": wallets,
		"conf": map[string]interface{}{
			"token":     map[string]string{"account_reserve": "2 SOL"},
			"whitelist": map[string]barter.Address{"admin": admin},
			"escrow":    map[string]string{"record_reserve": "3 SOL"},
		},
	}
	bz, err := json.Marshal(state)
	require.NoError(t, err)
	return bz
}

func newApp(t *testing.T, maker, taker *account) app.BaseApp {
	t.Helper()
	application, err := GenerateApp(&server.Options{Logger: log.NewNopLogger()})
	require.NoError(t, err)
	base := application.(app.BaseApp)
	base.InitChain(abci.RequestInitChain{
		ChainId:       chainID,
		AppStateBytes: genesis(t, maker.address(), maker.address(), taker.address()),
	})
	return base
}

func beginBlock(a app.BaseApp, height int64, now time.Time) {
	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: height, Time: now}})
}

func deliver(t *testing.T, a app.BaseApp, from *account, msg barter.Msg) *barter.DeliverResult {
	t.Helper()
	res, err := barter.ParseDeliverOrError(a.DeliverTx(from.sign(t, msg)))
	require.NoError(t, err, msg.Path())
	return res
}

func tokenBalance(t *testing.T, a app.BaseApp, addr barter.Address) uint64 {
	t.Helper()
	res := a.Query(abci.RequestQuery{Path: "/accounts", Data: addr})
	require.Equal(t, uint32(0), res.Code, res.Log)
	var set barter.ResultSet
	require.NoError(t, set.Unmarshal(res.Value))
	if len(set.Results) == 0 {
		return 0
	}
	var acc token.Account
	require.NoError(t, acc.Unmarshal(set.Results[0]))
	return acc.Amount
}

func TestSwapEndToEnd(t *testing.T) {
	maker, taker := newAccount(1), newAccount(2)
	a := newApp(t, maker, taker)
	assert.Equal(t, chainID, a.GetChainID())

	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	beginBlock(a, 1, start)

	res := deliver(t, a, maker, &token.CreateMintMsg{Authority: maker.address(), Symbol: "AAA"})
	mintA := barter.Address(res.Data)
	res = deliver(t, a, maker, &token.CreateMintMsg{Authority: maker.address(), Symbol: "BBB"})
	mintB := barter.Address(res.Data)

	res = deliver(t, a, maker, &token.CreateAccountMsg{Payer: maker.address(), Owner: maker.address(), Mint: mintA})
	makerAtaA := barter.Address(res.Data)
	res = deliver(t, a, taker, &token.CreateAccountMsg{Payer: taker.address(), Owner: taker.address(), Mint: mintB})
	takerAtaB := barter.Address(res.Data)

	deliver(t, a, maker, &token.MintToMsg{Account: makerAtaA, Amount: 100})
	deliver(t, a, maker, &token.MintToMsg{Account: takerAtaB, Amount: 100})

	escrowAddr, _, err := escrow.EscrowAddress(maker.address(), 7)
	require.NoError(t, err)
	vault, err := escrow.VaultAddress(escrowAddr, mintA)
	require.NoError(t, err)
	makerAtaB, err := token.AssociatedAddress(maker.address(), mintB)
	require.NoError(t, err)
	takerAtaA, err := token.AssociatedAddress(taker.address(), mintA)
	require.NoError(t, err)

	res = deliver(t, a, maker, &escrow.MakeMsg{
		Maker:       maker.address(),
		MintA:       mintA,
		MintB:       mintB,
		MakerAtaA:   makerAtaA,
		Seed:        7,
		Deposit:     40,
		Receive:     90,
		WaitingTime: 300,
	})
	assert.Equal(t, []byte(escrowAddr), res.Data)

	take := &escrow.TakeMsg{
		Taker:     taker.address(),
		Maker:     maker.address(),
		MintA:     mintA,
		MintB:     mintB,
		TakerAtaA: takerAtaA,
		TakerAtaB: takerAtaB,
		MakerAtaB: makerAtaB,
		Escrow:    escrowAddr,
		Vault:     vault,
	}
	early := a.DeliverTx(taker.sign(t, take))
	assert.Equal(t, escrow.ErrTooEarly.ABCICode(), early.Code, early.Log)

	a.EndBlock(abci.RequestEndBlock{Height: 1})
	a.Commit()

	assert.Equal(t, uint64(60), tokenBalance(t, a, makerAtaA))
	assert.Equal(t, uint64(40), tokenBalance(t, a, vault))

	beginBlock(a, 2, start.Add(5*time.Minute))
	deliver(t, a, taker, take)
	a.EndBlock(abci.RequestEndBlock{Height: 2})
	a.Commit()

	assert.Equal(t, uint64(60), tokenBalance(t, a, makerAtaA))
	assert.Equal(t, uint64(90), tokenBalance(t, a, makerAtaB))
	assert.Equal(t, uint64(40), tokenBalance(t, a, takerAtaA))
	assert.Equal(t, uint64(10), tokenBalance(t, a, takerAtaB))
	assert.Equal(t, uint64(0), tokenBalance(t, a, vault))

	q := a.Query(abci.RequestQuery{Path: "/escrows", Data: escrowAddr})
	require.Equal(t, uint32(0), q.Code)
	var set barter.ResultSet
	require.NoError(t, set.Unmarshal(q.Value))
	assert.Empty(t, set.Results)
}

func TestRejectUnsignedAndReplayed(t *testing.T) {
	maker, taker := newAccount(1), newAccount(2)
	a := newApp(t, maker, taker)
	beginBlock(a, 1, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))

	msg := &token.CreateMintMsg{Authority: maker.address(), Symbol: "AAA"}
	unsigned, err := NewTx(msg).Marshal()
	require.NoError(t, err)
	res := a.DeliverTx(unsigned)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code, res.Log)

	signed := maker.sign(t, msg)
	res = a.DeliverTx(signed)
	require.Equal(t, uint32(0), res.Code, res.Log)
	res = a.DeliverTx(signed)
	assert.Equal(t, sigs.ErrInvalidSequence.ABCICode(), res.Code, res.Log)

	// The taker signs a mint it has no authority over.
	res = a.DeliverTx(taker.sign(t, &token.CreateMintMsg{Authority: maker.address(), Symbol: "BBB"}))
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code, res.Log)
}

func TestGenesisRequiresConfiguration(t *testing.T) {
	maker := newAccount(1)
	ini := Initializers()
	state := barter.Options{
		"cash": json.RawMessage(fmt.Sprintf(`[{"address": "%s", "coins": ["10 SOL"]}]`, maker.address())),
	}
	err := ini.FromGenesis(state, store.MemStore())
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)
}
