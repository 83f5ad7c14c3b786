package repositories_test

import (
	"errors"
	"testing"
	"time"

	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/test/helpers"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errInsertFailed = errors.New("insert failed")

// failInserts ломает все INSERT в таблицу до конца теста
func failInserts(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	name := "test:fail_insert_" + table
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == table {
			_ = tx.AddError(errInsertFailed)
		}
	}))
	t.Cleanup(func() { _ = db.Callback().Create().Remove(name) })
}

func TestPortfolioRepository_ReplaceGalleryIsIdempotent(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewPortfolioRepository()
	_, profile := helpers.CreateCreator(t, db, "gallery", models.ProfileStatusApproved)

	images := []string{"/media/a.png", "/media/b.png", "/media/c.png"}
	require.NoError(t, repo.ReplaceGallery(db, profile.ID, images))
	require.NoError(t, repo.ReplaceGallery(db, profile.ID, images))

	items, err := repo.FindByProfile(db, profile.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, item := range items {
		assert.Equal(t, images[i], item.Image)
	}

	require.NoError(t, repo.ReplaceGallery(db, profile.ID, nil))
	items, err = repo.FindByProfile(db, profile.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTierRepository_ReplaceTiersIsIdempotent(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewTierRepository()
	_, profile := helpers.CreateCreator(t, db, "tiers", models.ProfileStatusApproved)

	build := func() []models.ServiceTier {
		basic := models.ServiceTier{Name: "Basic", Price: decimal.RequireFromString("5.00")}
		require.NoError(t, basic.SetBenefits([]string{"early access"}))
		pro := models.ServiceTier{Name: "Pro", Price: decimal.RequireFromString("19.99")}
		require.NoError(t, pro.SetBenefits(nil))
		return []models.ServiceTier{basic, pro}
	}

	require.NoError(t, repo.ReplaceTiers(db, profile.ID, build()))
	require.NoError(t, repo.ReplaceTiers(db, profile.ID, build()))

	tiers, err := repo.FindByProfile(db, profile.ID)
	require.NoError(t, err)
	require.Len(t, tiers, 2)
	assert.Equal(t, "Basic", tiers[0].Name)
	assert.Equal(t, []string{"early access"}, tiers[0].GetBenefits())
	assert.True(t, tiers[1].Price.Equal(decimal.RequireFromString("19.99")))
	assert.Empty(t, tiers[1].GetBenefits())
}

func TestPortfolioRepository_ReplaceGalleryRollsBackOnFailure(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewPortfolioRepository()
	_, profile := helpers.CreateCreator(t, db, "gallery_rollback", models.ProfileStatusApproved)

	before := []string{"/media/old-1.png", "/media/old-2.png"}
	require.NoError(t, repo.ReplaceGallery(db, profile.ID, before))

	failInserts(t, db, "portfolio_items")
	err := repo.ReplaceGallery(db, profile.ID, []string{"/media/new.png"})
	require.ErrorIs(t, err, errInsertFailed)

	items, err := repo.FindByProfile(db, profile.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for i, item := range items {
		assert.Equal(t, before[i], item.Image)
	}
}

func TestTierRepository_ReplaceTiersRollsBackOnFailure(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewTierRepository()
	_, profile := helpers.CreateCreator(t, db, "tiers_rollback", models.ProfileStatusApproved)

	basic := models.ServiceTier{Name: "Basic", Price: decimal.RequireFromString("5.00")}
	require.NoError(t, basic.SetBenefits([]string{"early access"}))
	require.NoError(t, repo.ReplaceTiers(db, profile.ID, []models.ServiceTier{basic}))

	failInserts(t, db, "service_tiers")
	pro := models.ServiceTier{Name: "Pro", Price: decimal.RequireFromString("19.99")}
	err := repo.ReplaceTiers(db, profile.ID, []models.ServiceTier{pro})
	require.ErrorIs(t, err, errInsertFailed)

	tiers, err := repo.FindByProfile(db, profile.ID)
	require.NoError(t, err)
	require.Len(t, tiers, 1)
	assert.Equal(t, "Basic", tiers[0].Name)
	assert.Equal(t, []string{"early access"}, tiers[0].GetBenefits())
}

func TestProfileRepository_FindApprovedCreators(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewProfileRepository()

	_, approved := helpers.CreateCreator(t, db, "approved", models.ProfileStatusApproved)
	helpers.CreateCreator(t, db, "pending", models.ProfileStatusPending)
	helpers.CreateCreator(t, db, "rejected", models.ProfileStatusRejected)

	// профиль не-креатора не попадает в выдачу даже со статусом approved
	supporter := helpers.CreateUser(t, db, "supporter", models.UserRoleSupporter)
	stray := models.NewPendingProfile(supporter.ID)
	stray.Status = models.ProfileStatusApproved
	require.NoError(t, db.Create(stray).Error)

	profiles, err := repo.FindApprovedCreators(db)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, approved.ID, profiles[0].ID)

	decided, err := repo.FindByStatuses(db, models.ProfileStatusApproved, models.ProfileStatusRejected)
	require.NoError(t, err)
	assert.Len(t, decided, 2)
}

func TestUserRepository_FindByUsernameIgnoresCase(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository()
	user := helpers.CreateUser(t, db, "MixedCase", models.UserRoleCreator)

	found, err := repo.FindByUsername(db, "mixedcase")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByUsername(db, "nobody")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestReviewRepository_Counts(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewReviewRepository()
	_, profile := helpers.CreateCreator(t, db, "counted", models.ProfileStatusApproved)
	author := helpers.CreateUser(t, db, "author", models.UserRoleSupporter)

	five, three := 5, 3
	for _, stars := range []*int{&five, nil, &three} {
		require.NoError(t, repo.CreateReview(db, &models.Review{
			ProfileID: profile.ID,
			AuthorID:  author.ID,
			Content:   "text",
			Stars:     stars,
		}))
	}

	starred, err := repo.CountStarred(db, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), starred)

	counts, err := repo.CountByProfiles(db, []string{profile.ID, "missing"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[profile.ID])
	assert.Zero(t, counts["missing"])

	ids, err := repo.FindProfileIDsByAuthor(db, author.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{profile.ID}, ids)

	stars, err := repo.StarsByProfile(db, profile.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{5, 3}, stars)
}

func TestReviewRepository_FindByProfileNewestFirstOnSameTimestamp(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewReviewRepository()
	_, profile := helpers.CreateCreator(t, db, "same_tick", models.ProfileStatusApproved)
	author := helpers.CreateUser(t, db, "same_tick_author", models.UserRoleSupporter)

	tick := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	for _, content := range []string{"first", "second", "third"} {
		review := &models.Review{ProfileID: profile.ID, AuthorID: author.ID, Content: content}
		review.CreatedAt = tick
		require.NoError(t, repo.CreateReview(db, review))
	}

	reviews, err := repo.FindByProfile(db, profile.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, "third", reviews[0].Content)
	assert.Equal(t, "second", reviews[1].Content)
	assert.Equal(t, "first", reviews[2].Content)
	assert.Equal(t, int64(3), reviews[0].Seq)
}
