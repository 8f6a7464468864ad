package schema

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =========================================================================
// Test Data Structures
// =========================================================================

type User struct {
	ID        string    `db:"column:id;generator:uuid"`
	FirstName string    `db:"first_name"`
	Email     string
	Likes     int       `db:"default"`
	CreatedAt time.Time `db:"column:created_at;default"`
	internal  string
}

type BlogPost struct {
	Audit
	Title string
	Draft bool `db:"-"`
}

type Audit struct {
	CreatedBy string
}

type Duplicate struct {
	A string `db:"x"`
	B string `db:"x"`
}

type Empty struct {
	hidden int
}

// =========================================================================
// Introspection Tests
// =========================================================================

func TestIntrospect(t *testing.T) {
	tests := []struct {
		name            string
		inputType       reflect.Type
		expectError     bool
		expectedColumns []string
		expectedTable   string
	}{
		{
			name:            "ValidStruct",
			inputType:       reflect.TypeOf(User{}),
			expectedColumns: []string{"id", "first_name", "email", "likes", "created_at"},
			expectedTable:   "users",
		},
		{
			name:            "ValidStructPtr",
			inputType:       reflect.TypeOf(&User{}),
			expectedColumns: []string{"id", "first_name", "email", "likes", "created_at"},
			expectedTable:   "users",
		},
		{
			name:            "EmbeddedAndSkipped",
			inputType:       reflect.TypeOf(BlogPost{}),
			expectedColumns: []string{"created_by", "title"},
			expectedTable:   "blog_posts",
		},
		{
			name:        "InvalidTypeString",
			inputType:   reflect.TypeOf("string"),
			expectError: true,
		},
		{
			name:        "DuplicateColumn",
			inputType:   reflect.TypeOf(Duplicate{}),
			expectError: true,
		},
		{
			name:        "NoMappedFields",
			inputType:   reflect.TypeOf(Empty{}),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := Introspect(tt.inputType)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, meta)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, meta)
			assert.Equal(t, tt.expectedColumns, meta.Columns())
			assert.Equal(t, tt.expectedTable, meta.TableName)
		})
	}
}

func TestIntrospectIsCached(t *testing.T) {
	first, err := Introspect(reflect.TypeOf(User{}))
	require.NoError(t, err)
	second, err := Introspect(reflect.TypeOf(&User{}))
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestExtract(t *testing.T) {
	meta, err := Introspect(reflect.TypeOf(User{}))
	require.NoError(t, err)

	record, err := meta.Extract(reflect.ValueOf(&User{FirstName: "Ada", Email: "ada@example.com"}))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"first_name": "Ada", "email": "ada@example.com"}, record)

	record, err = meta.Extract(reflect.ValueOf(User{ID: "fixed", Likes: 3}))
	require.NoError(t, err)
	assert.Equal(t, "fixed", record["id"])
	assert.Equal(t, 3, record["likes"])
	assert.NotContains(t, record, "created_at")

	_, err = meta.Extract(reflect.ValueOf(BlogPost{}))
	assert.Error(t, err)

	var nilUser *User
	_, err = meta.Extract(reflect.ValueOf(nilUser))
	assert.Error(t, err)
}

// =========================================================================
// Naming Tests
// =========================================================================

func TestNaming(t *testing.T) {
	naming := DefaultNamingStrategy()

	columns := map[string]string{
		"ID":          "id",
		"UserID":      "user_id",
		"FirstName":   "first_name",
		"HTTPServer":  "http_server",
		"OAuth2Token": "o_auth2_token",
		"already_ok":  "already_ok",
	}
	for in, want := range columns {
		assert.Equal(t, want, naming.ColumnName(in), in)
	}

	tables := map[string]string{
		"User":     "users",
		"BlogPost": "blog_posts",
		"Person":   "people",
		"Category": "categories",
	}
	for in, want := range tables {
		assert.Equal(t, want, naming.TableName(in), in)
	}

	assert.Equal(t, "blog_post", SingularNamingStrategy().TableName("BlogPost"))
}

func TestParseTagErrors(t *testing.T) {
	_, err := parseTag("ID", `db:"generator:"`, DefaultNamingStrategy())
	assert.Error(t, err)

	_, err = parseTag("ID", `db:"column:"`, DefaultNamingStrategy())
	assert.Error(t, err)
}

// =========================================================================
// Generator Tests
// =========================================================================

func TestGenerators(t *testing.T) {
	v, err := GenerateID("uuid")
	require.NoError(t, err)
	_, err = uuid.Parse(v.(string))
	assert.NoError(t, err)

	first, err := GenerateID("ulid")
	require.NoError(t, err)
	second, err := GenerateID("ulid")
	require.NoError(t, err)
	_, err = ulid.Parse(first.(string))
	assert.NoError(t, err)
	assert.Less(t, first.(string), second.(string))

	a, err := GenerateID("snowflake")
	require.NoError(t, err)
	b, err := GenerateID("snowflake")
	require.NoError(t, err)
	assert.Greater(t, b.(int64), a.(int64))

	_, err = GenerateID("nope")
	assert.Error(t, err)
}

type constGenerator struct{}

func (constGenerator) Generate() (any, error) { return "const", nil }
func (constGenerator) Type() string           { return "const" }

func TestRegisterGenerator(t *testing.T) {
	RegisterGenerator("const", constGenerator{})
	gen, ok := LookupGenerator("const")
	require.True(t, ok)
	assert.Equal(t, "const", gen.Type())
}
