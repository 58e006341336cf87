package impl

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"cashtrail/internal/domain/entity"
	"cashtrail/internal/domain/repository"
	"cashtrail/internal/domain/service"
	"cashtrail/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// memRepos is an in-memory implementation of every repository interface plus
// the RepositoryFactory. All records are stored as copies so a caller never
// observes a write it did not make.
type memRepos struct {
	mu           sync.Mutex
	users        map[uuid.UUID]*entity.User
	cards        map[uuid.UUID]*entity.PaymentCard
	categories   map[uuid.UUID]*entity.UserCategory
	merchants    map[uuid.UUID]*entity.Merchant
	mccs         map[uuid.UUID]*entity.MerchantCategoryCode
	mappings     map[uuid.UUID]*entity.RewardMapping
	transactions map[uuid.UUID]*entity.Transaction
}

func newMemRepos() *memRepos {
	return &memRepos{
		users:        make(map[uuid.UUID]*entity.User),
		cards:        make(map[uuid.UUID]*entity.PaymentCard),
		categories:   make(map[uuid.UUID]*entity.UserCategory),
		merchants:    make(map[uuid.UUID]*entity.Merchant),
		mccs:         make(map[uuid.UUID]*entity.MerchantCategoryCode),
		mappings:     make(map[uuid.UUID]*entity.RewardMapping),
		transactions: make(map[uuid.UUID]*entity.Transaction),
	}
}

func (m *memRepos) UserRepo() repository.UserRepository                 { return m }
func (m *memRepos) CardRepo() repository.PaymentCardRepository          { return m }
func (m *memRepos) UserCategoryRepo() repository.UserCategoryRepository { return m }
func (m *memRepos) MerchantRepo() repository.MerchantRepository         { return m }
func (m *memRepos) MCCRepo() repository.MCCRepository                   { return m }
func (m *memRepos) RewardMappingRepo() repository.RewardMappingRepository {
	return m
}
func (m *memRepos) TransactionRepo() repository.TransactionRepository { return m }

// memTxManager serializes Execute calls with a single lock, mirroring the
// serialization the database transaction provides for the uniqueness checks.
type memTxManager struct {
	mu    sync.Mutex
	repos *memRepos
}

func newMemTxManager(repos *memRepos) *memTxManager {
	return &memTxManager{repos: repos}
}

func (tm *memTxManager) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	return fn(tm.repos)
}

// --- users ---

func (m *memRepos) CreateUser(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}

	stored := *user
	m.users[user.ID] = &stored

	return nil
}

func (m *memRepos) FindUserByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	found := *user

	return &found, nil
}

func (m *memRepos) FindUserByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			found := *user

			return &found, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (m *memRepos) UpdateUser(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *user
	m.users[user.ID] = &stored

	return nil
}

// --- payment cards ---

func (m *memRepos) CreateCard(_ context.Context, card *entity.PaymentCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *card
	m.cards[card.ID] = &stored

	return nil
}

func (m *memRepos) FindCardByID(_ context.Context, id uuid.UUID) (*entity.PaymentCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	card, ok := m.cards[id]
	if !ok {
		return nil, repository.ErrCardNotFound
	}
	found := *card

	return &found, nil
}

func (m *memRepos) FindCardsByUser(_ context.Context, userID uuid.UUID) ([]*entity.PaymentCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cards []*entity.PaymentCard
	for _, card := range m.cards {
		if card.UserID == userID {
			found := *card
			cards = append(cards, &found)
		}
	}

	return cards, nil
}

func (m *memRepos) UpdateCard(_ context.Context, card *entity.PaymentCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *card
	m.cards[card.ID] = &stored

	return nil
}

func (m *memRepos) DeleteCard(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.cards, id)
	// Mirror the ON DELETE CASCADE on reward mappings.
	for mappingID, mapping := range m.mappings {
		if mapping.CardID == id {
			delete(m.mappings, mappingID)
		}
	}

	return nil
}

// --- user categories ---

func (m *memRepos) CreateCategory(_ context.Context, category *entity.UserCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *category
	m.categories[category.ID] = &stored

	return nil
}

func (m *memRepos) FindCategoryByID(_ context.Context, id uuid.UUID) (*entity.UserCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	category, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrUserCategoryNotFound
	}
	found := *category

	return &found, nil
}

func (m *memRepos) FindCategoriesByUser(_ context.Context, userID uuid.UUID) ([]*entity.UserCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var categories []*entity.UserCategory
	for _, category := range m.categories {
		if category.UserID == userID {
			found := *category
			categories = append(categories, &found)
		}
	}

	return categories, nil
}

func (m *memRepos) UpdateCategory(_ context.Context, category *entity.UserCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *category
	m.categories[category.ID] = &stored

	return nil
}

func (m *memRepos) DeleteCategory(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.categories, id)

	return nil
}

// --- merchants ---

func (m *memRepos) CreateMerchant(_ context.Context, merchant *entity.Merchant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *merchant
	m.merchants[merchant.ID] = &stored

	return nil
}

func (m *memRepos) FindMerchantByID(_ context.Context, id uuid.UUID) (*entity.Merchant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	merchant, ok := m.merchants[id]
	if !ok {
		return nil, repository.ErrMerchantNotFound
	}
	found := *merchant

	return &found, nil
}

func (m *memRepos) FindMerchantByNameAndLocation(_ context.Context, userID uuid.UUID, name, location string) (*entity.Merchant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, merchant := range m.merchants {
		if merchant.UserID == userID && merchant.Name == name && merchant.Location == location {
			found := *merchant

			return &found, nil
		}
	}

	return nil, repository.ErrMerchantNotFound
}

func (m *memRepos) FindMerchantsByUser(_ context.Context, userID uuid.UUID) ([]*entity.Merchant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var merchants []*entity.Merchant
	for _, merchant := range m.merchants {
		if merchant.UserID == userID {
			found := *merchant
			merchants = append(merchants, &found)
		}
	}

	return merchants, nil
}

func (m *memRepos) UpdateMerchant(_ context.Context, merchant *entity.Merchant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *merchant
	m.merchants[merchant.ID] = &stored

	return nil
}

func (m *memRepos) DeleteMerchant(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.merchants, id)
	for mappingID, mapping := range m.mappings {
		if mapping.MerchantID == id {
			delete(m.mappings, mappingID)
		}
	}

	return nil
}

// --- merchant category codes ---

func (m *memRepos) CreateMCCs(_ context.Context, codes []*entity.MerchantCategoryCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, code := range codes {
		stored := *code
		m.mccs[code.ID] = &stored
	}

	return nil
}

func (m *memRepos) FindMCCByID(_ context.Context, id uuid.UUID) (*entity.MerchantCategoryCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	code, ok := m.mccs[id]
	if !ok {
		return nil, repository.ErrMCCNotFound
	}
	found := *code

	return &found, nil
}

func (m *memRepos) ListMCCs(_ context.Context) ([]*entity.MerchantCategoryCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var codes []*entity.MerchantCategoryCode
	for _, code := range m.mccs {
		found := *code
		codes = append(codes, &found)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].Code < codes[j].Code })

	return codes, nil
}

func (m *memRepos) CountMCCs(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return int64(len(m.mccs)), nil
}

func (m *memRepos) DeleteMCC(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.mccs, id)
	// Mirror the ON DELETE SET NULL on reward mappings.
	for _, mapping := range m.mappings {
		if mapping.MCCID != nil && *mapping.MCCID == id {
			mapping.MCCID = nil
		}
	}

	return nil
}

// --- reward mappings ---

func (m *memRepos) CreateMapping(_ context.Context, mapping *entity.RewardMapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pairingTakenLocked(mapping.UserID, mapping.CardID, mapping.MerchantID, mapping.ID) {
		return repository.ErrPairingTaken
	}

	stored := *mapping
	m.mappings[mapping.ID] = &stored

	return nil
}

func (m *memRepos) FindMappingByID(_ context.Context, id uuid.UUID) (*entity.RewardMapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mapping, ok := m.mappings[id]
	if !ok {
		return nil, repository.ErrRewardMappingNotFound
	}
	found := *mapping

	return &found, nil
}

func (m *memRepos) FindMappingForPairing(_ context.Context, userID, cardID, merchantID uuid.UUID) (*entity.RewardMapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, mapping := range m.mappings {
		if mapping.UserID == userID && mapping.CardID == cardID && mapping.MerchantID == merchantID {
			found := *mapping

			return &found, nil
		}
	}

	return nil, repository.ErrRewardMappingNotFound
}

func (m *memRepos) FindMappingsByUser(_ context.Context, userID uuid.UUID) ([]*entity.RewardMapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var mappings []*entity.RewardMapping
	for _, mapping := range m.mappings {
		if mapping.UserID == userID {
			found := *mapping
			mappings = append(mappings, &found)
		}
	}

	return mappings, nil
}

func (m *memRepos) ExistsOtherForPairing(_ context.Context, userID, cardID, merchantID, excludeID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.pairingTakenLocked(userID, cardID, merchantID, excludeID), nil
}

func (m *memRepos) pairingTakenLocked(userID, cardID, merchantID, excludeID uuid.UUID) bool {
	for _, mapping := range m.mappings {
		if mapping.ID != excludeID && mapping.UserID == userID && mapping.CardID == cardID && mapping.MerchantID == merchantID {
			return true
		}
	}

	return false
}

func (m *memRepos) UpdateMapping(_ context.Context, mapping *entity.RewardMapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pairingTakenLocked(mapping.UserID, mapping.CardID, mapping.MerchantID, mapping.ID) {
		return repository.ErrPairingTaken
	}

	stored := *mapping
	m.mappings[mapping.ID] = &stored

	return nil
}

func (m *memRepos) DeleteMapping(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.mappings, id)

	return nil
}

// --- transactions ---

func (m *memRepos) CreateTransaction(_ context.Context, txn *entity.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *txn
	m.transactions[txn.ID] = &stored

	return nil
}

func (m *memRepos) FindTransactionByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	txn, ok := m.transactions[id]
	if !ok {
		return nil, repository.ErrTransactionNotFound
	}
	found := *txn

	return &found, nil
}

func (m *memRepos) FindTransactionsByUser(_ context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var txns []*entity.Transaction
	for _, txn := range m.transactions {
		if txn.UserID == userID {
			found := *txn
			txns = append(txns, &found)
		}
	}
	sort.Slice(txns, func(i, j int) bool { return txns[i].AuthorizedDate.After(txns[j].AuthorizedDate) })

	return txns, nil
}

func (m *memRepos) CountChildren(_ context.Context, id uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, txn := range m.transactions {
		if txn.ParentID != nil && *txn.ParentID == id {
			count++
		}
	}

	return count, nil
}

func (m *memRepos) UpdateTransaction(_ context.Context, txn *entity.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *txn
	m.transactions[txn.ID] = &stored

	return nil
}

func (m *memRepos) DeleteTransaction(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.transactions, id)
	for childID, child := range m.transactions {
		if child.ParentID != nil && *child.ParentID == id {
			delete(m.transactions, childID)
		}
	}

	return nil
}

// --- services ---

type geocodeStep struct {
	result *service.GeocodeResult
	err    error
}

// scriptedGeocoder replays a fixed sequence of lookup outcomes, repeating the
// last step once the script runs out, and records every query it receives.
type scriptedGeocoder struct {
	mu      sync.Mutex
	steps   []geocodeStep
	queries []string
}

func (g *scriptedGeocoder) Lookup(_ context.Context, query string) (*service.GeocodeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	step := g.steps[min(len(g.queries), len(g.steps)-1)]
	g.queries = append(g.queries, query)

	return step.result, step.err
}

func (g *scriptedGeocoder) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.queries)
}

// resolverFunc adapts a function to the GeoResolver interface.
type resolverFunc func(ctx context.Context, locationText string) (*usecase.ResolvedLocation, error)

func (f resolverFunc) Resolve(ctx context.Context, locationText string) (*usecase.ResolvedLocation, error) {
	return f(ctx, locationText)
}

// countingResolver wraps a GeoResolver and counts Resolve calls.
type countingResolver struct {
	inner usecase.GeoResolver
	calls int
}

func (r *countingResolver) Resolve(ctx context.Context, locationText string) (*usecase.ResolvedLocation, error) {
	r.calls++

	return r.inner.Resolve(ctx, locationText)
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Check(password, hash string) bool { return "hashed:"+password == hash }

type fakeTokenService struct{}

func (fakeTokenService) GenerateTokens(userID uuid.UUID) (string, string, error) {
	return "access-" + userID.String(), "refresh-" + userID.String(), nil
}

func (fakeTokenService) ValidateAccessToken(string) (*jwt.Token, error) { return nil, nil }

func (fakeTokenService) GetRefreshTokenDuration() time.Duration { return time.Hour }
