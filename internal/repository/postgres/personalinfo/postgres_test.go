package personalinfo

import (
	"context"
	"testing"

	"bookkeeping-app-go/internal/db/dbtest"
	personalinfodomain "bookkeeping-app-go/internal/domain/personalinfo"
	userdomain "bookkeeping-app-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, gdb *gorm.DB, email string) uint {
	t.Helper()
	user := userdomain.User{Email: email, PasswordHash: "h", Role: userdomain.RoleClient, Name: email}
	require.NoError(t, gdb.Create(&user).Error)
	return user.ID
}

func strPtr(value string) *string {
	return &value
}

func TestUpsertReturnsIDAndVersion(t *testing.T) {
	gdb := dbtest.NewSQLite(t)
	repo := NewPostgres(gdb)
	ctx := context.Background()
	userID := createUser(t, gdb, "a@example.com")

	info := personalinfodomain.PersonalInfo{UserID: userID, FullName: strPtr("Maria"), EmploymentStatus: personalinfodomain.EmploymentEmployed}
	require.NoError(t, repo.Upsert(ctx, &info, nil))
	require.NotZero(t, info.ID)
	assert.Equal(t, int64(1), info.Version)
	firstID := info.ID

	update := personalinfodomain.PersonalInfo{UserID: userID, FullName: strPtr("Maria S."), EmploymentStatus: personalinfodomain.EmploymentSelfEmployed}
	require.NoError(t, repo.Upsert(ctx, &update, nil))
	assert.Equal(t, firstID, update.ID)
	assert.Equal(t, int64(2), update.Version)

	stored, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Maria S.", *stored.FullName)
	assert.Equal(t, personalinfodomain.EmploymentSelfEmployed, stored.EmploymentStatus)
}

func TestUpsertWithStaleVersionConflicts(t *testing.T) {
	gdb := dbtest.NewSQLite(t)
	repo := NewPostgres(gdb)
	ctx := context.Background()
	userID := createUser(t, gdb, "b@example.com")

	info := personalinfodomain.PersonalInfo{UserID: userID, EmploymentStatus: personalinfodomain.EmploymentEmployed}
	require.NoError(t, repo.Upsert(ctx, &info, nil))

	stale := int64(7)
	again := personalinfodomain.PersonalInfo{UserID: userID, FullName: strPtr("late"), EmploymentStatus: personalinfodomain.EmploymentEmployed}
	assert.ErrorIs(t, repo.Upsert(ctx, &again, &stale), personalinfodomain.ErrVersionConflict)

	current := int64(1)
	require.NoError(t, repo.Upsert(ctx, &again, &current))
	assert.Equal(t, int64(2), again.Version)
}

func TestSaveReconcilesThroughSavepoints(t *testing.T) {
	gdb := dbtest.NewSQLite(t)
	service := personalinfodomain.NewService(NewPostgres(gdb))
	ctx := context.Background()
	userID := createUser(t, gdb, "c@example.com")

	first, err := service.Save(ctx, personalinfodomain.SaveInput{
		UserID: userID,
		Dependents: []personalinfodomain.DependentInput{
			{Name: "Ana", BirthDate: "2015-01-02", Relationship: "child"},
			{Name: "Ben"},
		},
	})
	require.NoError(t, err)
	require.Len(t, first.Dependents, 2)

	_, err = service.Save(ctx, personalinfodomain.SaveInput{
		UserID: userID,
		Dependents: []personalinfodomain.DependentInput{
			{ID: first.Dependents[0].ID, Name: "Ana Marie"},
			{Name: ""},
		},
	})
	require.ErrorIs(t, err, personalinfodomain.ErrDependentNameRequired)

	record, err := service.Get(ctx, userID)
	require.NoError(t, err)
	require.Len(t, record.Dependents, 2)
	assert.Equal(t, "Ana", *record.Dependents[0].DepName)

	second, err := service.Save(ctx, personalinfodomain.SaveInput{
		UserID: userID,
		Dependents: []personalinfodomain.DependentInput{
			{ID: first.Dependents[0].ID, Name: "Ana Marie", BirthDate: "2015-01-02"},
			{Name: "Carl"},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, second.Failures)
	assert.Equal(t, 1, second.Deleted)

	record, err = service.Get(ctx, userID)
	require.NoError(t, err)
	require.Len(t, record.Dependents, 2)
	assert.Equal(t, "Ana Marie", *record.Dependents[0].DepName)
	assert.Equal(t, "2015-01-02", *personalinfodomain.FormatDate(record.Dependents[0].DepBirthDate))
	assert.Nil(t, record.Dependents[0].DepRelationship)
	assert.Equal(t, "Carl", *record.Dependents[1].DepName)
}

func TestSaveUnknownUser(t *testing.T) {
	service := personalinfodomain.NewService(NewPostgres(dbtest.NewSQLite(t)))

	_, err := service.Save(context.Background(), personalinfodomain.SaveInput{UserID: 42})
	assert.ErrorIs(t, err, personalinfodomain.ErrUserNotFound)
}

func TestDependentsCascadeWithUser(t *testing.T) {
	gdb := dbtest.NewSQLite(t)
	service := personalinfodomain.NewService(NewPostgres(gdb))
	ctx := context.Background()
	userID := createUser(t, gdb, "d@example.com")

	_, err := service.Save(ctx, personalinfodomain.SaveInput{
		UserID:     userID,
		Dependents: []personalinfodomain.DependentInput{{Name: "Ana"}},
	})
	require.NoError(t, err)

	require.NoError(t, gdb.Delete(&userdomain.User{}, userID).Error)

	var remaining int64
	require.NoError(t, gdb.Model(&personalinfodomain.Dependent{}).Count(&remaining).Error)
	assert.Zero(t, remaining)
}
