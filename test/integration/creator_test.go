package integration_test

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreators_ListOnlyApproved(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	helpers.CreateCreator(t, ts.DB, "visible", models.ProfileStatusApproved)
	helpers.CreateCreator(t, ts.DB, "waiting", models.ProfileStatusPending)
	helpers.CreateCreator(t, ts.DB, "declined", models.ProfileStatusRejected)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/creators/", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	list := decode[dto.CreatorListResponse](t, body)
	require.Len(t, list.Creators, 1)
	assert.Equal(t, "visible", list.Creators[0].Username)
	assert.Equal(t, 0.0, list.Creators[0].Rating)
}

func TestCreatorDetail(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	helpers.CreateCreator(t, ts.DB, "quiet", models.ProfileStatusApproved)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/creator/missing/", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, body, "Creator not found.")

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/creator/Quiet/", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"reviews":[]`)
	assert.Contains(t, body, `"rating":0`)

	detail := decode[dto.CreatorDetail](t, body)
	assert.Equal(t, "quiet", detail.Username)
	assert.Equal(t, "bio of quiet", detail.Description)
	assert.NotEmpty(t, detail.JoinedDate)
}

func TestCreatorSetup_WithUploads(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, user := loginAs(t, ts, "illustrator", models.UserRoleCreator)

	res, body := ts.SendMultipart(t, http.MethodPost, "/api/v1/creator/setup/", token,
		map[string]string{
			"profile[bio]":          "I draw things",
			"profile[location]":     "Almaty",
			"profile[creatorLevel]": "Platinum",
			"profile[age]":          "29",
			"tiers":                 `[{"name":"Fan","price":"3.5","benefits":["sketches"]}]`,
		},
		[]helpers.FormFile{
			{Field: "profileImage", Filename: "me.png", Content: helpers.PNG},
			{Field: "portfolioImages", Filename: "one.png", Content: helpers.PNG},
			{Field: "portfolioImages", Filename: "two.png", Content: helpers.PNG},
		},
	)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Creator profile setup complete.")

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/creator/illustrator/", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	detail := decode[dto.CreatorDetail](t, body)

	assert.Equal(t, "I draw things", detail.Description)
	assert.Equal(t, "Platinum", detail.CreatorLevel)
	require.NotNil(t, detail.Age)
	assert.Equal(t, 29, *detail.Age)
	require.Len(t, detail.Tiers, 1)
	assert.Equal(t, 3.5, detail.Tiers[0].Price)
	assert.Equal(t, []string{"sketches"}, detail.Tiers[0].Benefits)
	require.Len(t, detail.Gallery, 2)

	prefix := "/media/profiles/" + user.ID + "/"
	require.True(t, strings.HasPrefix(detail.ProfileImage, prefix+"avatar/"), detail.ProfileImage)
	for _, img := range append([]string{detail.ProfileImage}, detail.Gallery[0].Image, detail.Gallery[1].Image) {
		rel := strings.TrimPrefix(img, "/media/")
		_, err := os.Stat(filepath.Join(ts.Storage.BasePath(), filepath.FromSlash(rel)))
		assert.NoError(t, err, "файл %s должен быть сохранен", img)
	}

	// файл отдается статикой
	res, _ = ts.SendRequest(t, http.MethodGet, detail.ProfileImage, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestCreatorSetup_RejectsNonImage(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, _ := loginAs(t, ts, "poet", models.UserRoleCreator)

	res, _ := ts.SendMultipart(t, http.MethodPost, "/api/v1/creator/setup/", token,
		map[string]string{"profile[bio]": "words"},
		[]helpers.FormFile{{Field: "profileImage", Filename: "evil.png", Content: []byte("#!/bin/sh\necho hi\n")}},
	)
	assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode)

	var profiles int64
	require.NoError(t, ts.DB.Model(&models.Profile{}).Count(&profiles).Error)
	assert.Zero(t, profiles)
}

func TestCreatorSetup_SupporterForbidden(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, _ := loginAs(t, ts, "backer", models.UserRoleSupporter)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/creator/setup/", token, map[string]interface{}{"bio": "x"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/creator/setup/", "", map[string]interface{}{"bio": "x"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestCreatorEdit_PartialUpdate(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, _ := loginAs(t, ts, "potter", models.UserRoleCreator)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/creator/setup/", token, map[string]interface{}{
		"bio":             "Clay",
		"location":        "Taraz",
		"portfolioImages": []string{"https://cdn.test/a.png"},
		"tiers":           []map[string]interface{}{{"name": "Basic", "price": 10}},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/creator/edit/", token, map[string]interface{}{
		"location": "Almaty",
		"age":      "not a number",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Profile updated successfully.")

	_, body = ts.SendRequest(t, http.MethodGet, "/api/v1/creator/potter/", "", nil)
	detail := decode[dto.CreatorDetail](t, body)
	assert.Equal(t, "Clay", detail.Description)
	assert.Equal(t, "Almaty", detail.Location)
	assert.Nil(t, detail.Age)
	assert.Equal(t, []dto.GalleryImage{{Image: "https://cdn.test/a.png"}}, detail.Gallery)
	require.Len(t, detail.Tiers, 1)
	assert.Equal(t, 10.0, detail.Tiers[0].Price)
}
