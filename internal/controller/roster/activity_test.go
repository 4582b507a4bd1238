package roster_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "mergington.dev/activities/internal/model/v1"
	"mergington.dev/activities/internal/pkg/testentry"
)

func do(t *testing.T, app *fiber.App, method, target string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &decoded), string(body))
	}
	return resp, decoded
}

func listActivities(t *testing.T, app *fiber.App) map[string]*v1.Activity {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/activities", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var activities map[string]*v1.Activity
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&activities))
	return activities
}

func TestGetActivities(t *testing.T) {
	var app *fiber.App
	testentry.Populate(t, &app)

	activities := listActivities(t, app)
	require.Len(t, activities, 3)
	assert.Equal(t, &v1.Activity{
		Description:     "Learn strategies and compete in chess tournaments",
		Schedule:        "Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: 12,
		Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
	}, activities["Chess Club"])
	assert.Contains(t, activities, "Programming Class")
	assert.Contains(t, activities, "Gym Class")
}

func TestSignUp(t *testing.T) {
	var app *fiber.App
	testentry.Populate(t, &app)

	t.Run("success", func(t *testing.T) {
		resp, body := do(t, app, http.MethodPost, "/activities/Chess%20Club/signup?email=new@mergington.edu")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Signed up new@mergington.edu for Chess Club", body["message"])
		assert.Contains(t, listActivities(t, app)["Chess Club"].Participants, "new@mergington.edu")
	})

	t.Run("already signed up", func(t *testing.T) {
		resp, body := do(t, app, http.MethodPost, "/activities/Chess%20Club/signup?email=new@mergington.edu")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "CONFLICT", body["code"])
		assert.Equal(t, "Student is already signed up", body["detail"])
		assert.Len(t, listActivities(t, app)["Chess Club"].Participants, 3)
	})

	t.Run("unknown activity", func(t *testing.T) {
		resp, body := do(t, app, http.MethodPost, "/activities/Drama%20Club/signup?email=new@mergington.edu")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", body["code"])
		assert.Equal(t, "Activity not found", body["detail"])
	})

	t.Run("missing email", func(t *testing.T) {
		resp, body := do(t, app, http.MethodPost, "/activities/Chess%20Club/signup")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_REQUEST", body["code"])
		assert.NotEmpty(t, body["violations"])
	})

	t.Run("email is not format checked", func(t *testing.T) {
		resp, body := do(t, app, http.MethodPost, "/activities/Gym%20Class/signup?email=not-an-address")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Signed up not-an-address for Gym Class", body["message"])
	})
}

func TestUnregister(t *testing.T) {
	var app *fiber.App
	testentry.Populate(t, &app)

	t.Run("success", func(t *testing.T) {
		resp, body := do(t, app, http.MethodDelete, "/activities/Chess%20Club/unregister?email=michael@mergington.edu")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Unregistered michael@mergington.edu from Chess Club", body["message"])
		assert.Equal(t, []string{"daniel@mergington.edu"}, listActivities(t, app)["Chess Club"].Participants)
	})

	t.Run("not signed up", func(t *testing.T) {
		resp, body := do(t, app, http.MethodDelete, "/activities/Chess%20Club/unregister?email=michael@mergington.edu")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Student is not signed up for this activity", body["detail"])
	})

	t.Run("unknown activity", func(t *testing.T) {
		resp, body := do(t, app, http.MethodDelete, "/activities/Drama%20Club/unregister?email=michael@mergington.edu")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Activity not found", body["detail"])
	})

	t.Run("missing email", func(t *testing.T) {
		resp, _ := do(t, app, http.MethodDelete, "/activities/Chess%20Club/unregister?email=")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSignUpThenUnregisterRestoresRoster(t *testing.T) {
	var app *fiber.App
	testentry.Populate(t, &app)

	before := listActivities(t, app)["Programming Class"].Participants

	resp, _ := do(t, app, http.MethodPost, "/activities/Programming%20Class/signup?email=trip@mergington.edu")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, app, http.MethodDelete, "/activities/Programming%20Class/unregister?email=trip@mergington.edu")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, before, listActivities(t, app)["Programming Class"].Participants)
}
