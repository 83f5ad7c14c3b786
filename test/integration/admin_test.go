package integration_test

import (
	"net/http"
	"testing"

	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_RequiresAdminRole(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	creator, _ := helpers.CreateCreator(t, ts.DB, "target", models.ProfileStatusApproved)
	token, _ := loginAs(t, ts, "intruder", models.UserRoleCreator)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/remove_creator/", token, map[string]string{"id": creator.ID})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/admin/approvals/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	var count int64
	require.NoError(t, ts.DB.Model(&models.User{}).Where("id = ?", creator.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAdmin_ApprovalFlow(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, _ := loginAs(t, ts, "root", models.UserRoleAdmin)
	creator, _ := helpers.CreateCreator(t, ts.DB, "newbie", models.ProfileStatusPending)
	helpers.CreateCreator(t, ts.DB, "veteran", models.ProfileStatusApproved)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/approvals/", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	approvals := decode[dto.ApprovalsResponse](t, body)
	require.Len(t, approvals.Pending, 1)
	assert.Equal(t, creator.ID, approvals.Pending[0].ID)
	assert.Len(t, approvals.Processed, 1)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/handle_approval/", token, map[string]string{
		"id": creator.ID, "status": "maybe",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/handle_approval/", token, map[string]string{
		"id": creator.ID, "status": "approved",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	approvals = decode[dto.ApprovalsResponse](t, body)
	assert.Empty(t, approvals.Pending)
	assert.Len(t, approvals.Processed, 2)

	require.Len(t, ts.Email.Messages(), 1)
	assert.Equal(t, []string{creator.Email}, ts.Email.Messages()[0].To)

	_, body = ts.SendRequest(t, http.MethodGet, "/api/v1/creators/", "", nil)
	assert.Len(t, decode[dto.CreatorListResponse](t, body).Creators, 2)
}

func TestAdmin_AddEditRemove(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, _ := loginAs(t, ts, "root", models.UserRoleAdmin)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/add/", token, map[string]interface{}{
		"username":      "invited",
		"name":          "Invited Creator",
		"creator_level": "Vip",
		"age":           33,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	added := decode[dto.AdminAddUserResponse](t, body)
	assert.Equal(t, "User and profile added successfully.", added.Message)
	assert.NotEmpty(t, added.Password)

	// новый креатор может войти с выданным паролем
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/token/", "", map[string]string{
		"email": added.Email, "password": added.Password,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	require.NoError(t, ts.DB.Create(&models.PortfolioItem{
		ProfileID: profileIDOf(t, ts, added.ID),
		Image:     "/media/old.png",
	}).Error)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/edit/invited/", token, map[string]interface{}{
		"name":    "Renamed",
		"bio":     "Edited by admin",
		"gallery": []map[string]string{{"image": "/media/one.png"}, {"image": "/media/two.png"}},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	edited := decode[dto.AdminEditUserResponse](t, body)
	assert.Equal(t, "Renamed", edited.Name)
	assert.Equal(t, "Vip", edited.CreatorLevel)
	require.NotNil(t, edited.Age)
	assert.Equal(t, 33, *edited.Age)
	assert.Equal(t, []dto.GalleryImage{{Image: "/media/one.png"}, {Image: "/media/two.png"}}, edited.Gallery)

	var items int64
	require.NoError(t, ts.DB.Model(&models.PortfolioItem{}).Count(&items).Error)
	assert.Equal(t, int64(2), items)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/remove_creator/", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/remove_creator/", token, map[string]string{"id": added.ID})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/creator/invited/", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	require.NoError(t, ts.DB.Model(&models.PortfolioItem{}).Count(&items).Error)
	assert.Zero(t, items)
}

func profileIDOf(t *testing.T, ts *helpers.TestServer, userID string) string {
	t.Helper()
	var profile models.Profile
	require.NoError(t, ts.DB.First(&profile, "user_id = ?", userID).Error)
	return profile.ID
}
