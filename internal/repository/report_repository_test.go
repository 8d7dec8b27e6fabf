package repository

import (
	"CommunityReportAPI/internal/config"
	"CommunityReportAPI/internal/constant"
	"CommunityReportAPI/internal/entity"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

// forEachRepository runs fn against both the gorm store and the in-memory
// fallback so the two stay behaviourally identical.
func forEachRepository(t *testing.T, fn func(t *testing.T, repo ReportRepository)) {
	t.Run("sqlite", func(t *testing.T) {
		fn(t, NewReportRepository(newSQLiteDB(t)))
	})
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryReportRepository())
	})
}

var baseTime = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func newReport(building, location string, createdAt time.Time, photos ...string) *entity.Report {
	if len(photos) == 0 {
		photos = []string{"https://cdn.example.com/uploads/1.jpg"}
	}
	return &entity.Report{
		Building:    building,
		Location:    location,
		ReportType:  "water_leakage",
		Description: "天花板漏水",
		Photos:      photos,
		Status:      constant.StatusPending,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func strPtr(s string) *string {
	return &s
}

func TestCreateAndGetReport(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo ReportRepository) {
		ctx := context.Background()
		report := newReport("A", "A-lobby", baseTime,
			"https://cdn.example.com/uploads/2.jpg",
			"https://cdn.example.com/uploads/1.jpg",
			"https://cdn.example.com/uploads/2.jpg",
		)
		report.Contact = strPtr("0912-345-678")

		require.NoError(t, repo.CreateReport(ctx, report))
		require.Positive(t, report.ID)

		got, err := repo.GetReportByID(ctx, report.ID)
		require.NoError(t, err)

		assert.Equal(t, report.ID, got.ID)
		assert.Equal(t, "A", got.Building)
		assert.Equal(t, "A-lobby", got.Location)
		assert.Equal(t, "water_leakage", got.ReportType)
		assert.Equal(t, "天花板漏水", got.Description)
		require.NotNil(t, got.Contact)
		assert.Equal(t, "0912-345-678", *got.Contact)
		assert.Equal(t, entity.Photos{
			"https://cdn.example.com/uploads/2.jpg",
			"https://cdn.example.com/uploads/1.jpg",
			"https://cdn.example.com/uploads/2.jpg",
		}, got.Photos)
		assert.Equal(t, constant.StatusPending, got.Status)
		assert.Nil(t, got.ImprovementText)
		assert.True(t, baseTime.Equal(got.CreatedAt))
		assert.True(t, baseTime.Equal(got.UpdatedAt))
	})
}

func TestReportIDsAreMonotonic(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo ReportRepository) {
		ctx := context.Background()
		first := newReport("A", "A-lobby", baseTime)
		second := newReport("A", "A-lobby", baseTime)

		require.NoError(t, repo.CreateReport(ctx, first))
		require.NoError(t, repo.CreateReport(ctx, second))

		assert.Greater(t, second.ID, first.ID)
	})
}

func TestGetReportNotFound(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo ReportRepository) {
		_, err := repo.GetReportByID(context.Background(), 99999)
		assert.ErrorIs(t, err, ErrReportNotFound)
	})
}

func TestListReportsNewestFirst(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo ReportRepository) {
		ctx := context.Background()
		older := newReport("A", "A-lobby", baseTime)
		newer := newReport("B", "B-1F", baseTime.Add(time.Hour))
		sameAsNewer := newReport("C", "C-2F", baseTime.Add(time.Hour))

		require.NoError(t, repo.CreateReport(ctx, older))
		require.NoError(t, repo.CreateReport(ctx, newer))
		require.NoError(t, repo.CreateReport(ctx, sameAsNewer))

		reports, err := repo.ListReports(ctx)
		require.NoError(t, err)
		require.Len(t, reports, 3)

		assert.Equal(t, sameAsNewer.ID, reports[0].ID)
		assert.Equal(t, newer.ID, reports[1].ID)
		assert.Equal(t, older.ID, reports[2].ID)
	})
}

func TestListReportsEmpty(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo ReportRepository) {
		reports, err := repo.ListReports(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, reports)
		assert.Empty(t, reports)
	})
}

func TestUpdateReportStatus(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo ReportRepository) {
		ctx := context.Background()
		report := newReport("A", "A-lobby", baseTime)
		require.NoError(t, repo.CreateReport(ctx, report))

		updated, err := repo.UpdateReportStatus(ctx, report.ID, StatusUpdate{
			Status:          constant.StatusCompleted,
			ImprovementText: strPtr("fixed the leak"),
			UpdatedAt:       baseTime.Add(time.Minute),
		})
		require.NoError(t, err)
		assert.Equal(t, constant.StatusCompleted, updated.Status)
		require.NotNil(t, updated.ImprovementText)
		assert.Equal(t, "fixed the leak", *updated.ImprovementText)

		got, err := repo.GetReportByID(ctx, report.ID)
		require.NoError(t, err)
		assert.Equal(t, constant.StatusCompleted, got.Status)
		require.NotNil(t, got.ImprovementText)
		assert.Equal(t, "fixed the leak", *got.ImprovementText)
		assert.True(t, got.UpdatedAt.After(report.UpdatedAt))
		assert.True(t, baseTime.Equal(got.CreatedAt))
	})
}

func TestUpdateReportStatusKeepsImprovementTextWhenOmitted(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo ReportRepository) {
		ctx := context.Background()
		report := newReport("A", "A-lobby", baseTime)
		require.NoError(t, repo.CreateReport(ctx, report))

		_, err := repo.UpdateReportStatus(ctx, report.ID, StatusUpdate{
			Status:          constant.StatusCompleted,
			ImprovementText: strPtr("replaced the pipe"),
			UpdatedAt:       baseTime.Add(time.Minute),
		})
		require.NoError(t, err)

		_, err = repo.UpdateReportStatus(ctx, report.ID, StatusUpdate{
			Status:    constant.StatusProcessing,
			UpdatedAt: baseTime.Add(2 * time.Minute),
		})
		require.NoError(t, err)

		got, err := repo.GetReportByID(ctx, report.ID)
		require.NoError(t, err)
		assert.Equal(t, constant.StatusProcessing, got.Status)
		require.NotNil(t, got.ImprovementText)
		assert.Equal(t, "replaced the pipe", *got.ImprovementText)
	})
}

func TestUpdateReportStatusEmptyImprovementTextReplaces(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo ReportRepository) {
		ctx := context.Background()
		report := newReport("A", "A-lobby", baseTime)
		require.NoError(t, repo.CreateReport(ctx, report))

		_, err := repo.UpdateReportStatus(ctx, report.ID, StatusUpdate{
			Status:          constant.StatusRejected,
			ImprovementText: strPtr("duplicate"),
			UpdatedAt:       baseTime.Add(time.Minute),
		})
		require.NoError(t, err)

		_, err = repo.UpdateReportStatus(ctx, report.ID, StatusUpdate{
			Status:          constant.StatusPending,
			ImprovementText: strPtr(""),
			UpdatedAt:       baseTime.Add(2 * time.Minute),
		})
		require.NoError(t, err)

		got, err := repo.GetReportByID(ctx, report.ID)
		require.NoError(t, err)
		require.NotNil(t, got.ImprovementText)
		assert.Equal(t, "", *got.ImprovementText)
	})
}

func TestUpdateReportStatusUpdatedAtStrictlyIncreases(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo ReportRepository) {
		ctx := context.Background()
		report := newReport("A", "A-lobby", baseTime)
		require.NoError(t, repo.CreateReport(ctx, report))

		previous := report.UpdatedAt
		for i := 0; i < 3; i++ {
			// Same clock reading as creation: the store must still move forward.
			updated, err := repo.UpdateReportStatus(ctx, report.ID, StatusUpdate{
				Status:    constant.StatusProcessing,
				UpdatedAt: baseTime,
			})
			require.NoError(t, err)
			assert.True(t, updated.UpdatedAt.After(previous), "update %d", i)

			got, err := repo.GetReportByID(ctx, report.ID)
			require.NoError(t, err)
			assert.True(t, got.UpdatedAt.Equal(updated.UpdatedAt))
			previous = got.UpdatedAt
		}
	})
}

func TestUpdateReportStatusNotFound(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo ReportRepository) {
		_, err := repo.UpdateReportStatus(context.Background(), 42, StatusUpdate{
			Status:    constant.StatusCompleted,
			UpdatedAt: baseTime,
		})
		assert.ErrorIs(t, err, ErrReportNotFound)
	})
}

func TestAddAndListComments(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo ReportRepository) {
		ctx := context.Background()
		report := newReport("A", "A-lobby", baseTime)
		other := newReport("B", "B-1F", baseTime)
		require.NoError(t, repo.CreateReport(ctx, report))
		require.NoError(t, repo.CreateReport(ctx, other))

		first := &entity.Comment{ReportID: report.ID, Content: "已派人查看", CreatedBy: "管理員", CreatedAt: baseTime.Add(time.Minute)}
		second := &entity.Comment{ReportID: report.ID, Content: "預計明天修復", CreatedBy: "管理員", CreatedAt: baseTime.Add(2 * time.Minute)}
		unrelated := &entity.Comment{ReportID: other.ID, Content: "noted", CreatedBy: "staff", CreatedAt: baseTime}

		require.NoError(t, repo.AddComment(ctx, first))
		require.NoError(t, repo.AddComment(ctx, second))
		require.NoError(t, repo.AddComment(ctx, unrelated))
		assert.Positive(t, first.ID)
		assert.Greater(t, second.ID, first.ID)

		comments, err := repo.ListComments(ctx, report.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, second.ID, comments[0].ID)
		assert.Equal(t, "預計明天修復", comments[0].Content)
		assert.Equal(t, first.ID, comments[1].ID)
		assert.True(t, first.CreatedAt.Equal(comments[1].CreatedAt))
	})
}

func TestAddCommentToMissingReport(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo ReportRepository) {
		ctx := context.Background()

		err := repo.AddComment(ctx, &entity.Comment{ReportID: 777, Content: "hello", CreatedBy: "someone", CreatedAt: baseTime})
		assert.ErrorIs(t, err, ErrReportNotFound)

		comments, err := repo.ListComments(ctx, 777)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}

func TestGetLocationStatus(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo ReportRepository) {
		ctx := context.Background()

		latestLobby := baseTime.Add(3 * time.Hour)
		for _, r := range []*entity.Report{
			newReport("A", "A-lobby", baseTime),
			newReport("A", "A-lobby", latestLobby),
			newReport("A", "A-lobby", baseTime.Add(time.Hour)),
			newReport("A", "A-roof", baseTime.Add(2*time.Hour)),
			newReport("B", "A-lobby", baseTime),
		} {
			require.NoError(t, repo.CreateReport(ctx, r))
		}

		statuses, err := repo.GetLocationStatus(ctx)
		require.NoError(t, err)
		require.Len(t, statuses, 3)

		assert.Equal(t, "A", statuses[0].Building)
		assert.Equal(t, "A-lobby", statuses[0].Location)
		assert.EqualValues(t, 3, statuses[0].ReportCount)
		require.NotNil(t, statuses[0].LatestReportDate)
		assert.True(t, latestLobby.Equal(*statuses[0].LatestReportDate))

		assert.Equal(t, "A", statuses[1].Building)
		assert.Equal(t, "A-roof", statuses[1].Location)
		assert.EqualValues(t, 1, statuses[1].ReportCount)
		require.NotNil(t, statuses[1].LatestReportDate)
		assert.True(t, baseTime.Add(2*time.Hour).Equal(*statuses[1].LatestReportDate))

		assert.Equal(t, "B", statuses[2].Building)
		assert.Equal(t, "A-lobby", statuses[2].Location)
		assert.EqualValues(t, 1, statuses[2].ReportCount)
	})
}

func TestGetLocationStatusEmpty(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo ReportRepository) {
		statuses, err := repo.GetLocationStatus(context.Background())
		require.NoError(t, err)
		assert.Empty(t, statuses)
	})
}

func TestListPhotoURLs(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo ReportRepository) {
		ctx := context.Background()
		require.NoError(t, repo.CreateReport(ctx, newReport("A", "A-lobby", baseTime, "https://x/1.jpg", "https://x/2.jpg")))
		require.NoError(t, repo.CreateReport(ctx, newReport("B", "B-1F", baseTime, "https://x/3.png")))

		urls, err := repo.ListPhotoURLs(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"https://x/1.jpg", "https://x/2.jpg", "https://x/3.png"}, urls)
	})
}

func TestPing(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo ReportRepository) {
		assert.NoError(t, repo.Ping(context.Background()))
	})
}

func TestStoreFailureIsPersistenceError(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewReportRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = repo.ListReports(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrReportNotFound)
	assert.Contains(t, err.Error(), "list reports")
}

func TestNextUpdatedAt(t *testing.T) {
	previous := baseTime

	assert.Equal(t, baseTime.Add(time.Second), nextUpdatedAt(previous, baseTime.Add(time.Second)))
	assert.Equal(t, baseTime.Add(time.Microsecond), nextUpdatedAt(previous, baseTime))
	assert.Equal(t, baseTime.Add(time.Microsecond), nextUpdatedAt(previous, baseTime.Add(-time.Hour)))
}
