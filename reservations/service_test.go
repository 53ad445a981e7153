package reservations

import (
	"context"
	"sort"
	"testing"
	"time"

	"sabor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory Repo mirroring the store's contract, including
// newest-first ordering.
type memRepo struct {
	byID map[string]*models.Reservation
}

func newMemRepo() *memRepo {
	return &memRepo{byID: make(map[string]*models.Reservation)}
}

func (r *memRepo) Insert(_ context.Context, res *models.Reservation) error {
	cp := *res
	r.byID[res.ID] = &cp
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*models.Reservation, error) {
	res, ok := r.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *memRepo) FindByEmail(_ context.Context, email string) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, res := range r.byID {
		if res.Email == email {
			out = append(out, *res)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *memRepo) FindAll(_ context.Context) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, res := range r.byID {
		out = append(out, *res)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *memRepo) SetStatus(_ context.Context, id, status string, at time.Time) error {
	res, ok := r.byID[id]
	if !ok {
		return models.ErrNotFound
	}
	res.Status = status
	res.UpdatedAt = at
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func sortNewestFirst(list []models.Reservation) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

var testClock = time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC) // a Tuesday

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return testClock }
	return svc, repo
}

func validInput() CreateInput {
	return CreateInput{
		Name:   "João Silva",
		Email:  "joao@mail.com",
		Phone:  "11988887777",
		Date:   "2025-06-10",
		Time:   "19:20",
		Guests: 4,
	}
}

func TestCreate(t *testing.T) {
	svc, repo := newTestService()

	res, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, StatusPending, res.Status)
	assert.Equal(t, testClock, res.CreatedAt)

	stored, err := repo.FindByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, stored.ID)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name   string
		mutate func(*CreateInput)
		field  string
	}{
		{"short name", func(in *CreateInput) { in.Name = "Jo" }, "name"},
		{"bad email", func(in *CreateInput) { in.Email = "not-an-email" }, "email"},
		{"short phone", func(in *CreateInput) { in.Phone = "119" }, "phone"},
		{"bad date format", func(in *CreateInput) { in.Date = "10/06/2025" }, "date"},
		{"past date", func(in *CreateInput) { in.Date = "2025-06-02" }, "date"},
		{"empty time", func(in *CreateInput) { in.Time = "" }, "time"},
		{"zero guests", func(in *CreateInput) { in.Guests = 0 }, "guests"},
		{"too many guests", func(in *CreateInput) { in.Guests = 11 }, "guests"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := svc.Create(context.Background(), in)
			var ve *models.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestCreateAcceptsToday(t *testing.T) {
	svc, _ := newTestService()

	in := validInput()
	in.Date = "2025-06-03" // same day as the clock
	_, err := svc.Create(context.Background(), in)
	assert.NoError(t, err)
}

func TestListByEmailScoped(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mk := func(email string, created time.Time) {
		svc.now = func() time.Time { return created }
		in := validInput()
		in.Email = email
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	mk("a@b.com", testClock)
	mk("a@b.com", testClock.Add(time.Minute))
	mk("c@d.com", testClock.Add(2*time.Minute))

	list, err := svc.ListByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a@b.com", list[0].Email)
	assert.Equal(t, "a@b.com", list[1].Email)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt), "newest first")
}

func TestUpdateStatus(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	res, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	svc.now = func() time.Time { return testClock.Add(time.Hour) }
	updated, err := svc.UpdateStatus(ctx, res.ID, StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, updated.Status)
	assert.Equal(t, testClock.Add(time.Hour), updated.UpdatedAt)
	assert.Equal(t, testClock, updated.CreatedAt, "createdAt never changes")
}

func TestUpdateStatusFromTerminalState(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	res, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, res.ID, StatusCancelled)
	require.NoError(t, err)

	before, _ := repo.FindByID(ctx, res.ID)
	_, err = svc.UpdateStatus(ctx, res.ID, StatusConfirmed)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	after, _ := repo.FindByID(ctx, res.ID)
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt, "record untouched after rejected transition")
}

func TestUpdateStatusUnknownID(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.UpdateStatus(context.Background(), "missing", StatusConfirmed)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	res, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, res.ID, "done")
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Field)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	res, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	// deletion is not a transition; it works from terminal states too
	_, err = svc.UpdateStatus(ctx, res.ID, StatusConfirmed)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, res.ID))

	assert.ErrorIs(t, svc.Delete(ctx, res.ID), models.ErrNotFound)
}
