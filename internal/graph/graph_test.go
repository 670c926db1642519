package graph

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/event-booking/internal/auth"
	"github.com/sakif/event-booking/internal/repository/memory"
	"github.com/sakif/event-booking/internal/service"
)

// =========================================================================
// TEST HELPERS
// =========================================================================

func newTestSchema(t *testing.T) *graphql.Schema {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	users := service.NewUserService(store, auth.NewPasswordServiceForTest(bcrypt.MinCost), time.Second, logger)
	events := service.NewEventService(store, store, time.Second, logger)

	schema, err := NewSchema(users, events, logger)
	require.NoError(t, err)
	return schema
}

func exec(t *testing.T, schema *graphql.Schema, ctx context.Context, query string, vars map[string]interface{}, out interface{}) *graphql.Response {
	t.Helper()
	resp := schema.Exec(ctx, query, "", vars)
	if out != nil && len(resp.Data) > 0 {
		require.NoError(t, json.Unmarshal(resp.Data, out))
	}
	return resp
}

func errorCode(t *testing.T, resp *graphql.Response) string {
	t.Helper()
	require.NotEmpty(t, resp.Errors, "expected a GraphQL error")
	code, _ := resp.Errors[0].Extensions["code"].(string)
	return code
}

const createAnn = `mutation {
	createUser(userInput: {firstName: "Ann", lastName: "Lee", email: "ann@example.com", password: "secret123", phone: 5551234}) {
		_id firstName lastName email password phone
	}
}`

type gqlUser struct {
	ID            string     `json:"_id"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Email         string     `json:"email"`
	Password      *string    `json:"password"`
	Phone         int        `json:"phone"`
	CreatedEvents []gqlEvent `json:"createdEvents"`
}

type gqlEvent struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Date        string   `json:"date"`
	Creator     *gqlUser `json:"creator"`
}

func registerAnn(t *testing.T, schema *graphql.Schema) gqlUser {
	t.Helper()
	var data struct {
		CreateUser gqlUser `json:"createUser"`
	}
	resp := exec(t, schema, context.Background(), createAnn, nil, &data)
	require.Empty(t, resp.Errors)
	return data.CreateUser
}

const createEventMutation = `mutation Create($input: EventInput!) {
	createEvent(eventInput: $input) {
		_id title description price date
		creator { _id firstName lastName password }
	}
}`

func confVars(price interface{}) map[string]interface{} {
	return map[string]interface{}{
		"input": map[string]interface{}{
			"title":       "Conf",
			"description": "Annual conf",
			"price":       price,
			"date":        "2024-05-01",
		},
	}
}

// =========================================================================
// SCENARIO TESTS
// =========================================================================

func TestBookingScenario(t *testing.T) {
	schema := newTestSchema(t)

	ann := registerAnn(t, schema)
	assert.NotEmpty(t, ann.ID)
	assert.Equal(t, "Ann", ann.FirstName)
	assert.Equal(t, "ann@example.com", ann.Email)
	assert.Nil(t, ann.Password)
	assert.Equal(t, 5551234, ann.Phone)

	var created struct {
		CreateEvent *gqlEvent `json:"createEvent"`
	}
	ctx := auth.WithUserID(context.Background(), ann.ID)
	resp := exec(t, schema, ctx, createEventMutation, confVars("49.99"), &created)
	require.Empty(t, resp.Errors)
	require.NotNil(t, created.CreateEvent)

	event := created.CreateEvent
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "Conf", event.Title)
	assert.InDelta(t, 49.99, event.Price, 1e-9)
	assert.Equal(t, "2024-05-01T00:00:00Z", event.Date)
	require.NotNil(t, event.Creator)
	assert.Equal(t, ann.ID, event.Creator.ID)
	assert.Nil(t, event.Creator.Password)

	var listed struct {
		Events []gqlEvent `json:"events"`
	}
	resp = exec(t, schema, context.Background(), `{
		events {
			_id title price
			creator { firstName lastName createdEvents { _id title } }
		}
	}`, nil, &listed)
	require.Empty(t, resp.Errors)
	require.Len(t, listed.Events, 1)
	assert.Equal(t, event.ID, listed.Events[0].ID)
	assert.Equal(t, "Ann", listed.Events[0].Creator.FirstName)
	assert.Equal(t, "Lee", listed.Events[0].Creator.LastName)
	require.Len(t, listed.Events[0].Creator.CreatedEvents, 1)
	assert.Equal(t, event.ID, listed.Events[0].Creator.CreatedEvents[0].ID)
}

func TestEvents_EmptyList(t *testing.T) {
	schema := newTestSchema(t)

	var data struct {
		Events []gqlEvent `json:"events"`
	}
	resp := exec(t, schema, context.Background(), `{ events { _id } }`, nil, &data)
	require.Empty(t, resp.Errors)
	assert.NotNil(t, data.Events)
	assert.Empty(t, data.Events)
}

func TestIDAlias(t *testing.T) {
	schema := newTestSchema(t)
	ann := registerAnn(t, schema)

	var data struct {
		CreateEvent struct {
			UnderscoreID string `json:"_id"`
			ID           string `json:"id"`
		} `json:"createEvent"`
	}
	ctx := auth.WithUserID(context.Background(), ann.ID)
	resp := exec(t, schema, ctx, `mutation {
		createEvent(eventInput: {title: "Conf", description: "Annual conf", price: 10, date: "2024-05-01"}) { _id id }
	}`, nil, &data)
	require.Empty(t, resp.Errors)
	assert.NotEmpty(t, data.CreateEvent.ID)
	assert.Equal(t, data.CreateEvent.ID, data.CreateEvent.UnderscoreID)
}

// =========================================================================
// PRICE INPUT TESTS
// =========================================================================

func TestCreateEvent_PriceForms(t *testing.T) {
	tests := []struct {
		name  string
		price interface{}
		want  float64
	}{
		{"numeric string", "49.99", 49.99},
		{"float variable", 49.99, 49.99},
		{"integer variable", float64(20), 20},
		{"zero", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := newTestSchema(t)
			ann := registerAnn(t, schema)

			var data struct {
				CreateEvent *gqlEvent `json:"createEvent"`
			}
			ctx := auth.WithUserID(context.Background(), ann.ID)
			resp := exec(t, schema, ctx, createEventMutation, confVars(tt.price), &data)
			require.Empty(t, resp.Errors)
			require.NotNil(t, data.CreateEvent)
			assert.InDelta(t, tt.want, data.CreateEvent.Price, 1e-9)
		})
	}
}

func TestCreateEvent_PriceLiteral(t *testing.T) {
	schema := newTestSchema(t)
	ann := registerAnn(t, schema)

	for _, literal := range []string{`49.99`, `"49.99"`} {
		var data struct {
			CreateEvent *gqlEvent `json:"createEvent"`
		}
		ctx := auth.WithUserID(context.Background(), ann.ID)
		resp := exec(t, schema, ctx, `mutation {
			createEvent(eventInput: {title: "Conf", description: "Annual conf", price: `+literal+`, date: "2024-05-01"}) { price }
		}`, nil, &data)
		require.Empty(t, resp.Errors, literal)
		require.NotNil(t, data.CreateEvent, literal)
		assert.InDelta(t, 49.99, data.CreateEvent.Price, 1e-9, literal)
	}
}

// =========================================================================
// ERROR TESTS
// =========================================================================

func TestCreateEvent_Unauthenticated(t *testing.T) {
	schema := newTestSchema(t)
	registerAnn(t, schema)

	var data struct {
		CreateEvent *gqlEvent `json:"createEvent"`
	}
	resp := exec(t, schema, context.Background(), createEventMutation, confVars("49.99"), &data)
	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, resp))
	assert.Nil(t, data.CreateEvent)
}

func TestCreateEvent_UnknownActingUser(t *testing.T) {
	schema := newTestSchema(t)

	ctx := auth.WithUserID(context.Background(), "d0000000000000000000")
	resp := exec(t, schema, ctx, createEventMutation, confVars("49.99"), nil)
	assert.Equal(t, "USER_NOT_FOUND", errorCode(t, resp))

	var listed struct {
		Events []gqlEvent `json:"events"`
	}
	resp = exec(t, schema, context.Background(), `{ events { _id } }`, nil, &listed)
	require.Empty(t, resp.Errors)
	assert.Empty(t, listed.Events)
}

func TestCreateEvent_ValidationError(t *testing.T) {
	schema := newTestSchema(t)
	ann := registerAnn(t, schema)
	ctx := auth.WithUserID(context.Background(), ann.ID)

	tests := []struct {
		name      string
		price     interface{}
		date      string
		wantField string
	}{
		{"negative price", "-5", "2024-05-01", "price"},
		{"non-numeric price", "abc", "2024-05-01", "price"},
		{"bad date", "10", "not a date", "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := confVars(tt.price)
			vars["input"].(map[string]interface{})["date"] = tt.date

			resp := exec(t, schema, ctx, createEventMutation, vars, nil)
			assert.Equal(t, "VALIDATION_ERROR", errorCode(t, resp))
			assert.Equal(t, tt.wantField, resp.Errors[0].Extensions["field"])
		})
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	schema := newTestSchema(t)
	registerAnn(t, schema)

	var data struct {
		CreateUser *gqlUser `json:"createUser"`
	}
	resp := exec(t, schema, context.Background(), createAnn, nil, &data)
	assert.Equal(t, "DUPLICATE_EMAIL", errorCode(t, resp))
	assert.Equal(t, "email", resp.Errors[0].Extensions["field"])
	assert.Nil(t, data.CreateUser)
}

func TestCreateUser_InvalidPhone(t *testing.T) {
	schema := newTestSchema(t)

	resp := exec(t, schema, context.Background(), `mutation {
		createUser(userInput: {firstName: "Ann", lastName: "Lee", email: "ann@example.com", password: "x", phone: 0}) { _id }
	}`, nil, nil)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, resp))
	assert.Equal(t, "phone", resp.Errors[0].Extensions["field"])
}

func TestQueryDepthLimit(t *testing.T) {
	schema := newTestSchema(t)

	resp := exec(t, schema, context.Background(), `{ events { creator { createdEvents { creator { createdEvents {
		creator { createdEvents { creator { createdEvents { creator { createdEvents { _id } } } } } }
	} } } } } }`, nil, nil)
	assert.NotEmpty(t, resp.Errors)
}

// =========================================================================
// SCALAR TESTS
// =========================================================================

func TestDecimal_UnmarshalGraphQL(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{"49.99", "49.99"},
		{49.99, "49.99"},
		{int32(20), "20"},
		{json.Number("1.5"), "1.5"},
	}

	for _, tt := range tests {
		var d Decimal
		require.NoError(t, d.UnmarshalGraphQL(tt.in))
		assert.Equal(t, tt.want, d.Value)
	}

	var d Decimal
	assert.Error(t, d.UnmarshalGraphQL(true))
	assert.True(t, d.ImplementsGraphQLType("Decimal"))
	assert.False(t, d.ImplementsGraphQLType("Float"))
}
