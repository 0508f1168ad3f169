package shredder

import (
	"reflect"
	"testing"
	"time"

	"github.com/dball/slots/internal/attrs"
	"github.com/dball/slots/internal/record"
	"github.com/dball/slots/internal/structs/models"
	"github.com/dball/slots/internal/structs/schemas"
	. "github.com/dball/slots/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name      string     `slot:"name"`
	Age       int        `slot:"age"`
	Pets      *int       `slot:"pets,usenull"`
	Birthdate time.Time  `slot:"birthdate"`
	Deathdate *time.Time `slot:"deathdate"`
	Extra     string
}

func TestShred(t *testing.T) {
	epoch := time.Date(1969, 7, 20, 20, 17, 54, 0, time.UTC)
	four := 4

	t.Run("values", func(t *testing.T) {
		shredder := NewShredder(models.NewCachingAnalyzer())
		values, err := shredder.Shred(person{Name: "Donald", Age: 48, Pets: &four, Birthdate: epoch, Extra: "x"})
		assert.NoError(t, err)
		expected := map[string]Value{
			"name":      String("Donald"),
			"age":       Number(48),
			"pets":      Number(4),
			"birthdate": Inst(epoch),
			"deathdate": Null{},
		}
		assert.Equal(t, expected, values)
	})

	t.Run("pointer to struct", func(t *testing.T) {
		shredder := NewShredder(models.NewCachingAnalyzer())
		values, err := shredder.Shred(&person{Name: "Stephen"})
		assert.NoError(t, err)
		assert.Equal(t, String("Stephen"), values["name"])
		assert.Equal(t, Null{}, values["pets"])
	})

	t.Run("invalid values", func(t *testing.T) {
		shredder := NewShredder(models.NewCachingAnalyzer())
		_, err := shredder.Shred(5)
		assert.ErrorIs(t, err, Error{Code: "shredder.invalidStruct"})
		_, err = shredder.Shred((*person)(nil))
		assert.ErrorIs(t, err, Error{Code: "shredder.nilStruct"})
	})
}

func TestApply(t *testing.T) {
	analyzer := models.NewCachingAnalyzer()
	schema, err := schemas.Analyze(attrs.NewRegistry(), analyzer, reflect.TypeOf(person{}), "")
	require.NoError(t, err)
	rec := record.New(schema)

	epoch := time.Date(1969, 7, 20, 20, 17, 54, 0, time.UTC)
	err = NewShredder(analyzer).Apply(rec, person{Name: "Donald", Age: 48, Birthdate: epoch})
	assert.NoError(t, err)
	assert.Equal(t, String("Donald"), rec.Get("name"))
	assert.Equal(t, Number(48), rec.Get("age"))
	assert.Equal(t, Null{}, rec.Get("pets"))
	assert.Equal(t, Inst(epoch), rec.Get("birthdate"))
	assert.Equal(t, Null{}, rec.Get("deathdate"))
}
