package repository

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clients-api/internal/auth"
	"github.com/BruksfildServices01/clients-api/internal/config"
	"github.com/BruksfildServices01/clients-api/internal/db"
	"github.com/BruksfildServices01/clients-api/internal/domain"
	"github.com/BruksfildServices01/clients-api/internal/domain/city"
	"github.com/BruksfildServices01/clients-api/internal/domain/client"
	"github.com/BruksfildServices01/clients-api/internal/domain/user"
	"github.com/BruksfildServices01/clients-api/internal/httperr"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DBDriver: "sqlite",
		DBUrl:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}
	gdb, err := db.Open(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func seedCities(t *testing.T, repo *CityGormRepository, names ...string) []uint {
	t.Helper()

	ids := make([]uint, 0, len(names))
	for _, n := range names {
		id, err := repo.Create(context.Background(), city.Input{Name: n, StateID: 1})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestCityRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewCityGormRepository(newTestDB(t), zerolog.Nop())

	id, err := repo.Create(ctx, city.Input{Name: "Porto Alegre", StateID: 21})
	require.NoError(t, err)
	assert.NotZero(t, id)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Porto Alegre", got.Name)
	assert.Equal(t, 21, got.StateID)

	require.NoError(t, repo.UpdateByID(ctx, id, city.Input{Name: "Canoas", StateID: 0}))
	got, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Canoas", got.Name)
	assert.Equal(t, 0, got.StateID)

	require.NoError(t, repo.DeleteByID(ctx, id))
	_, err = repo.GetByID(ctx, id)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httperr.StatusOf(err))
	assert.Equal(t, httperr.MsgRecordNotFound, err.Error())
}

func TestCityIdsAreNotReused(t *testing.T) {
	ctx := context.Background()
	repo := NewCityGormRepository(newTestDB(t), zerolog.Nop())

	ids := seedCities(t, repo, "Alpha", "Bravo")
	require.NoError(t, repo.DeleteByID(ctx, ids[1]))

	next := seedCities(t, repo, "Charlie")
	assert.Greater(t, next[0], ids[1])
}

func TestCityGetAllPaginationAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewCityGormRepository(newTestDB(t), zerolog.Nop())
	seedCities(t, repo, "Delta", "alpha", "Charlie", "Bravo")

	rows, err := repo.GetAll(ctx, domain.ListQuery{Limit: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	rows, err = repo.GetAll(ctx, domain.ListQuery{OrderBy: "id", Order: "desc", Limit: 1, Page: 2})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Charlie", rows[0].Name)

	rows, err = repo.GetAll(ctx, domain.ListQuery{Page: 5})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCityFilterIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewCityGormRepository(newTestDB(t), zerolog.Nop())
	seedCities(t, repo, "Porto Alegre", "Porto Velho", "Recife")

	total, err := repo.Count(ctx, domain.ListQuery{Filter: "PORTO"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	rows, err := repo.GetAll(ctx, domain.ListQuery{Filter: "porto"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	total, err = repo.Count(ctx, domain.ListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestCityGetAllAppendsRequestedID(t *testing.T) {
	ctx := context.Background()
	repo := NewCityGormRepository(newTestDB(t), zerolog.Nop())
	ids := seedCities(t, repo, "Porto Alegre", "Recife", "Porto Velho")

	rows, err := repo.GetAll(ctx, domain.ListQuery{Filter: "porto", Limit: 1, ID: ids[1]})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ids[1], rows[1].ID)

	// the id does not change the count
	total, err := repo.Count(ctx, domain.ListQuery{Filter: "porto", ID: ids[1]})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	rows, err = repo.GetAll(ctx, domain.ListQuery{Filter: "porto", Limit: 1, ID: 999})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCityDeleteStillReferenced(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	cities := NewCityGormRepository(gdb, zerolog.Nop())
	clients := NewClientGormRepository(gdb, zerolog.Nop())

	ids := seedCities(t, cities, "Recife")
	_, err := clients.Create(ctx, client.Input{Name: "Maria", Email: "maria@example.com", CityID: ids[0]})
	require.NoError(t, err)

	err = cities.DeleteByID(ctx, ids[0])
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httperr.StatusOf(err))
	assert.Equal(t, httperr.MsgStillReferenced, err.Error())
}

func TestClientWriteProbes(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	cities := NewCityGormRepository(gdb, zerolog.Nop())
	repo := NewClientGormRepository(gdb, zerolog.Nop())
	ids := seedCities(t, cities, "Recife", "Olinda")

	_, err := repo.Create(ctx, client.Input{Name: "Ana", Email: "ana@example.com", CityID: 999})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httperr.StatusOf(err))
	assert.Equal(t, httperr.MsgCityNotFound, err.Error())

	anaID, err := repo.Create(ctx, client.Input{Name: "Ana", Email: "ana@example.com", CityID: ids[0]})
	require.NoError(t, err)
	bobID, err := repo.Create(ctx, client.Input{Name: "Bob", Email: "bob@example.com", CityID: ids[0]})
	require.NoError(t, err)

	_, err = repo.Create(ctx, client.Input{Name: "Other", Email: "ANA@example.com", CityID: ids[0]})
	require.Error(t, err)
	assert.Equal(t, httperr.MsgEmailRegistered, err.Error())

	// keeping its own email is not a conflict
	require.NoError(t, repo.UpdateByID(ctx, anaID, client.Input{Name: "Ana Maria", Email: "ana@example.com", CityID: ids[1]}))
	got, err := repo.GetByID(ctx, anaID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got.Name)
	assert.Equal(t, ids[1], got.CityID)

	err = repo.UpdateByID(ctx, bobID, client.Input{Name: "Bob", Email: "ana@example.com", CityID: ids[0]})
	require.Error(t, err)
	assert.Equal(t, httperr.MsgEmailRegistered, err.Error())

	err = repo.UpdateByID(ctx, bobID, client.Input{Name: "Bob", Email: "bob@example.com", CityID: 999})
	require.Error(t, err)
	assert.Equal(t, httperr.MsgCityNotFound, err.Error())
}

func TestClientFilterMatchesNameOrEmail(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	ids := seedCities(t, NewCityGormRepository(gdb, zerolog.Nop()), "Recife")
	repo := NewClientGormRepository(gdb, zerolog.Nop())

	for _, in := range []client.Input{
		{Name: "Ana", Email: "ana@acme.com", CityID: ids[0]},
		{Name: "Acme Bob", Email: "bob@example.com", CityID: ids[0]},
		{Name: "Carl", Email: "carl@example.com", CityID: ids[0]},
	} {
		_, err := repo.Create(ctx, in)
		require.NoError(t, err)
	}

	total, err := repo.Count(ctx, domain.ListQuery{Filter: "acme"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	rows, err := repo.GetAll(ctx, domain.ListQuery{Filter: "acme", OrderBy: "email"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ana@acme.com", rows[0].Email)
}

func TestEmailKeepsItsCase(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	ids := seedCities(t, NewCityGormRepository(gdb, zerolog.Nop()), "Recife")

	clients := NewClientGormRepository(gdb, zerolog.Nop())
	id, err := clients.Create(ctx, client.Input{Name: "Bob", Email: " Bob.Mixed@Example.com", CityID: ids[0]})
	require.NoError(t, err)

	got, err := clients.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Bob.Mixed@Example.com", got.Email)

	_, err = clients.Create(ctx, client.Input{Name: "Bob 2", Email: "bob.mixed@example.com", CityID: ids[0]})
	require.Error(t, err)
	assert.Equal(t, httperr.MsgEmailRegistered, err.Error())

	users := NewUserGormRepository(gdb, auth.NewBcryptHasher(bcrypt.MinCost), zerolog.Nop())
	uid, err := users.Create(ctx, user.Input{Name: "Jane", Email: "Jane.Doe@Example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)

	u, err := users.GetByID(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "Jane.Doe@Example.com", u.Email)

	u, err = users.GetByEmail(ctx, "jane.doe@example.com")
	require.NoError(t, err)
	assert.Equal(t, uid, u.ID)
}

func TestUserPasswordIsHashed(t *testing.T) {
	ctx := context.Background()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	repo := NewUserGormRepository(newTestDB(t), hasher, zerolog.Nop())

	id, err := repo.Create(ctx, user.Input{Name: "Jane", Email: "Jane@Example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)

	got, err := repo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.NotEqual(t, "Str0ng!pass", got.Password)

	ok, err := hasher.Verify("Str0ng!pass", got.Password)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.UpdateByID(ctx, id, user.Input{Name: "Jane", Email: "jane@example.com", Password: "N3w!password"}))
	got, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	ok, err = hasher.Verify("N3w!password", got.Password)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserEmailUniqueAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewUserGormRepository(newTestDB(t), auth.NewBcryptHasher(bcrypt.MinCost), zerolog.Nop())

	_, err := repo.Create(ctx, user.Input{Name: "Jane", Email: "jane@example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, user.Input{Name: "Jane 2", Email: "jane@example.com", Password: "Str0ng!pass"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httperr.StatusOf(err))
	assert.Equal(t, httperr.MsgEmailRegistered, err.Error())

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, httperr.StatusOf(err))
	assert.Equal(t, httperr.MsgInvalidCredentials, err.Error())
}
