package dashboard

import (
	"context"
	"testing"

	"bookkeeping-app-go/internal/db/dbtest"
	dashboarddomain "bookkeeping-app-go/internal/domain/dashboard"
	userdomain "bookkeeping-app-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemindersSeedOnceInDateOrder(t *testing.T) {
	service := dashboarddomain.NewService(NewPostgres(dbtest.NewSQLite(t)))
	ctx := context.Background()

	require.NoError(t, service.SeedDefaultReminders(ctx))
	require.NoError(t, service.SeedDefaultReminders(ctx))

	reminders, err := service.Reminders(ctx)
	require.NoError(t, err)
	require.Len(t, reminders, 3)
	assert.Equal(t, "Oct 20, 2025", reminders[0].Date.Format(dashboarddomain.ReminderDateLayout))
	assert.Equal(t, "Annual Income Tax Return", reminders[2].Description)
}

func TestHomeStatsCountsLiveRows(t *testing.T) {
	gdb := dbtest.NewSQLite(t)
	service := dashboarddomain.NewService(NewPostgres(gdb))
	ctx := context.Background()

	require.NoError(t, gdb.Create(&userdomain.User{Email: "a@example.com", PasswordHash: "h", Role: userdomain.RoleClient, Name: "A"}).Error)
	require.NoError(t, gdb.Create(&userdomain.User{Email: "b@example.com", PasswordHash: "h", Role: userdomain.RoleBookkeeper, Name: "B"}).Error)
	require.NoError(t, gdb.Create(&dashboarddomain.HomeStat{StatName: "pending_reviews", StatValue: 2}).Error)

	stats, err := service.HomeStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats[dashboarddomain.StatTotalClients])
	assert.Equal(t, int64(0), stats[dashboarddomain.StatTotalDocuments])
	assert.Equal(t, int64(2), stats["pending_reviews"])
}

func TestActivitiesNewestFirstWithLimit(t *testing.T) {
	gdb := dbtest.NewSQLite(t)
	service := dashboarddomain.NewService(NewPostgres(gdb))
	ctx := context.Background()

	user := userdomain.User{Email: "c@example.com", PasswordHash: "h", Role: userdomain.RoleClient, Name: "C"}
	require.NoError(t, gdb.Create(&user).Error)

	for i := 0; i < 12; i++ {
		require.NoError(t, service.Record(ctx, user.ID, "message_sent", "Sent a message"))
	}

	activities, err := service.RecentActivities(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, activities, 10)
	assert.Greater(t, activities[0].ID, activities[9].ID)
}
