package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"resale/internal/database"
	"resale/internal/docstore"
	"resale/internal/eventbus"
	"resale/internal/security"
	"resale/internal/types"
	"resale/logger"
)

func init() {
	if err := logger.InitLogger("development"); err != nil {
		panic(err)
	}
}

func newDocStore(t *testing.T) docstore.Store {
	t.Helper()
	db, err := docstore.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return docstore.New(db)
}

func newCustomerService(t *testing.T) CustomerService {
	docs := newDocStore(t)
	return NewCustomerService(
		database.NewCustomerRepository(docs),
		database.NewWishlistRepository(docs),
		security.NewTokenManager("test-secret", time.Hour))
}

func TestCustomerRegisterAndLogin(t *testing.T) {
	svc := newCustomerService(t)
	ctx := context.Background()

	customer, err := svc.Register(ctx, types.RegisterParams{
		Email:    "Jamie@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "jamie@example.com", customer.Email)
	assert.NotEqual(t, "correct-horse", customer.PasswordHash)

	// duplicate email, case-insensitive
	_, err = svc.Register(ctx, types.RegisterParams{
		Email:    "JAMIE@example.com",
		Password: "something-else",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	auth, err := svc.Login(ctx, types.LoginParams{Email: "jamie@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)

	_, err = svc.Login(ctx, types.LoginParams{Email: "jamie@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestWishlistRoundTrip(t *testing.T) {
	svc := newCustomerService(t)
	ctx := context.Background()

	customer, err := svc.Register(ctx, types.RegisterParams{Email: "a@b.com", Password: "password1"})
	require.NoError(t, err)

	// never saved: empty, not an error
	wishlist, err := svc.GetWishlist(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, wishlist.ProductIDs)

	productID := newUUID(t)
	updated, err := svc.UpdateWishlist(ctx, customer.ID, types.UpdateWishlistParams{
		ProductIDs: []uuid.UUID{productID},
	})
	require.NoError(t, err)
	require.Len(t, updated.ProductIDs, 1)

	wishlist, err = svc.GetWishlist(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, productID, wishlist.ProductIDs[0])
}

func TestStaffLoginDisabledAccount(t *testing.T) {
	docs := newDocStore(t)
	svc := NewStaffService(database.NewStaffRepository(docs), security.NewTokenManager("test-secret", time.Hour))
	ctx := context.Background()

	staff, err := svc.Create(ctx, types.CreateStaffParams{
		Email:    "ops@example.com",
		Name:     "Ops",
		Password: "password1",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, types.LoginParams{Email: "ops@example.com", Password: "password1"})
	require.NoError(t, err)

	disabled := true
	_, err = svc.Update(ctx, staff.ID, types.UpdateStaffParams{Disabled: &disabled})
	require.NoError(t, err)

	_, err = svc.Login(ctx, types.LoginParams{Email: "ops@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEnsureAdminBootstrap(t *testing.T) {
	docs := newDocStore(t)
	svc := NewStaffService(database.NewStaffRepository(docs), security.NewTokenManager("test-secret", time.Hour))
	ctx := context.Background()

	password, err := svc.EnsureAdmin(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, password)

	_, err = svc.Login(ctx, types.LoginParams{Email: "admin@example.com", Password: password})
	assert.NoError(t, err)

	// second call is a no-op
	password, err = svc.EnsureAdmin(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Empty(t, password)
}

func newTradeInService(t *testing.T) (TradeInService, CatalogService) {
	docs := newDocStore(t)
	catalog := NewCatalogService(database.NewProductRepository(docs))
	return NewTradeInService(database.NewSubmissionRepository(docs), catalog, eventbus.New()), catalog
}

func TestQuotePricing(t *testing.T) {
	svc, catalog := newTradeInService(t)
	ctx := context.Background()

	// no catalog match: keyword table, mint takes 85% of the pro base
	quote, err := svc.Quote(ctx, types.QuoteParams{DeviceModel: "Galaxy Pro", Condition: types.ConditionMint})
	require.NoError(t, err)
	assert.Equal(t, int64(45000*85/100), quote.Price)
	assert.True(t, quote.ValidUntil.After(time.Now()))

	// a published catalog product overrides the keyword base
	_, err = catalog.CreateProduct(ctx, types.CreateProductParams{
		SKU:       "GP-1",
		Title:     "Galaxy Pro",
		BasePrice: 80000,
		Published: true,
	})
	require.NoError(t, err)

	quote, err = svc.Quote(ctx, types.QuoteParams{DeviceModel: "Galaxy Pro", Condition: types.ConditionBroken})
	require.NoError(t, err)
	assert.Equal(t, int64(80000*10/100), quote.Price)

	_, err = svc.Quote(ctx, types.QuoteParams{DeviceModel: "anything", Condition: "pristine"})
	assert.ErrorIs(t, err, ErrUnknownCondition)
}

func TestSubmissionLifecycle(t *testing.T) {
	svc, _ := newTradeInService(t)
	ctx := context.Background()
	customerID := newUUID(t)

	submission, err := svc.CreateSubmission(ctx, customerID, types.CreateSubmissionParams{
		DeviceModel: "Phone Mini",
		Condition:   types.ConditionGood,
	})
	require.NoError(t, err)
	assert.Equal(t, types.SubmissionPending, submission.Status)
	assert.Equal(t, int64(25000*65/100), submission.QuotedPrice)

	// pending -> paid is not allowed
	_, err = svc.Review(ctx, submission.ID, types.ReviewSubmissionParams{Status: types.SubmissionPaid})
	assert.ErrorIs(t, err, ErrSubmissionFinalized)

	accepted, err := svc.Review(ctx, submission.ID, types.ReviewSubmissionParams{Status: types.SubmissionAccepted})
	require.NoError(t, err)
	assert.Equal(t, types.SubmissionAccepted, accepted.Status)

	paid, err := svc.Review(ctx, submission.ID, types.ReviewSubmissionParams{Status: types.SubmissionPaid})
	require.NoError(t, err)
	assert.Equal(t, types.SubmissionPaid, paid.Status)

	// paid is terminal
	_, err = svc.Review(ctx, submission.ID, types.ReviewSubmissionParams{Status: types.SubmissionRejected})
	assert.ErrorIs(t, err, ErrSubmissionFinalized)

	mine, err := svc.ListForCustomer(ctx, customerID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestCustomerPasswordHashSurvivesPersistence(t *testing.T) {
	docs := newDocStore(t)
	customers := database.NewCustomerRepository(docs)
	svc := NewCustomerService(customers, database.NewWishlistRepository(docs),
		security.NewTokenManager("test-secret", time.Hour))
	ctx := context.Background()

	registered, err := svc.Register(ctx, types.RegisterParams{
		Email:    "jamie@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	reloaded, err := customers.FindByID(ctx, registered.ID)
	require.NoError(t, err)
	require.NotEmpty(t, reloaded.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(reloaded.PasswordHash), []byte("correct-horse")))

	// the hash lives in the stored document, never in the API shape
	doc, err := docs.FindOne(ctx, docstore.Customers, registered.ID.String())
	require.NoError(t, err)
	assert.Contains(t, string(doc.Data), "password_hash")

	body, err := json.Marshal(reloaded)
	require.NoError(t, err)
	assert.NotContains(t, string(body), reloaded.PasswordHash)
	assert.NotContains(t, string(body), "password_hash")
}

func TestStaffPasswordHashSurvivesPersistence(t *testing.T) {
	docs := newDocStore(t)
	repo := database.NewStaffRepository(docs)
	svc := NewStaffService(repo, security.NewTokenManager("test-secret", time.Hour))
	ctx := context.Background()

	created, err := svc.Create(ctx, types.CreateStaffParams{
		Email:    "ops@resale.dev",
		Name:     "Ops",
		Password: "backups4life",
	})
	require.NoError(t, err)

	reloaded, err := repo.FindByEmail(ctx, "ops@resale.dev")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(reloaded.PasswordHash), []byte("backups4life")))

	listed, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.NotEmpty(t, listed[0].PasswordHash)

	auth, err := svc.Login(ctx, types.LoginParams{Email: "ops@resale.dev", Password: "backups4life"})
	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)

	body, err := json.Marshal(created)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password_hash")
}

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}
