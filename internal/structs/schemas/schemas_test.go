package schemas

import (
	"reflect"
	"testing"
	"time"

	"github.com/dball/slots/internal/attrs"
	"github.com/dball/slots/internal/structs/models"
	. "github.com/dball/slots/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSimple(t *testing.T) {
	type Person struct {
		ID      string    `slot:"id"`
		Name    string    `slot:"name"`
		Age     int       `slot:"age,usenull"`
		Score   *float64  `slot:"score,default=1.5"`
		Born    time.Time `slot:"born"`
		Tags    []string  `slot:"tags"`
		Ignored string
	}

	schema, err := Analyze(attrs.NewRegistry(), models.NewCachingAnalyzer(), reflect.TypeOf(Person{}), "")
	require.NoError(t, err)
	assert.Equal(t, "person", schema.Name())
	assert.Equal(t, []string{"id", "name", "age", "score", "born", "tags"}, schema.Names())

	kinds := map[string]attrs.Kind{}
	for _, attr := range schema.Attrs() {
		kinds[attr.Name] = attr.Type.Kind
	}
	assert.Equal(t, map[string]attrs.Kind{
		"id": attrs.Mixed, "name": attrs.Mixed, "age": attrs.Int,
		"score": attrs.Float, "born": attrs.Date, "tags": attrs.Object,
	}, kinds)

	age, _ := schema.Attr("age")
	assert.True(t, age.UseNull)
	score, _ := schema.Attr("score")
	assert.Equal(t, Number(1.5), score.DefaultValue())
}

func TestNamedSchema(t *testing.T) {
	type row struct {
		Total float64 `slot:"total,type=number"`
	}
	schema, err := Analyze(attrs.NewRegistry(), models.NewCachingAnalyzer(), reflect.TypeOf(&row{}), "ledger")
	require.NoError(t, err)
	assert.Equal(t, "ledger", schema.Name())
}

func TestUnknownType(t *testing.T) {
	type Price struct {
		Amount float64 `slot:"amount,type=currency"`
	}
	registry := attrs.NewRegistry()
	_, err := Analyze(registry, models.NewCachingAnalyzer(), reflect.TypeOf(Price{}), "")
	assert.ErrorIs(t, err, attrs.ErrUnknownType)

	require.NoError(t, registry.Register("currency", attrs.Type{Kind: attrs.Float}))
	_, err = Analyze(registry, models.NewCachingAnalyzer(), reflect.TypeOf(Price{}), "")
	assert.NoError(t, err)
}
