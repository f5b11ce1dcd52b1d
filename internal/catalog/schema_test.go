package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doubaokun/voltdb/internal/types"
)

func TestSchemaOffsets(t *testing.T) {
	schema := NewSchema()
	schema.AddIntField("id")
	schema.AddStringField("name", 20)
	schema.AddIntField("age")

	assert.Equal(t, []string{"id", "name", "age"}, schema.Fields())
	assert.Equal(t, 0, schema.IndexOf("id"))
	assert.Equal(t, 1, schema.IndexOf("name"))
	assert.Equal(t, 2, schema.IndexOf("age"))
	assert.Equal(t, -1, schema.IndexOf("missing"))

	assert.Equal(t, types.ValueTypeVarchar, schema.Type("name"))
	assert.Equal(t, 20, schema.Length("name"))
	assert.Equal(t, types.ValueTypeInvalid, schema.Type("missing"))
	assert.Equal(t, 0, schema.Length("missing"))
}

func TestSchemaReAddKeepsOffset(t *testing.T) {
	schema := NewSchema()
	schema.AddIntField("a")
	schema.AddIntField("b")
	schema.AddStringField("a", 10)

	assert.Equal(t, []string{"a", "b"}, schema.Fields())
	assert.Equal(t, 0, schema.IndexOf("a"))
	assert.Equal(t, types.ValueTypeVarchar, schema.Type("a"))
}

func TestSchemaFieldsIsACopy(t *testing.T) {
	schema := NewSchema()
	schema.AddIntField("a")
	fields := schema.Fields()
	fields[0] = "changed"
	assert.True(t, schema.HasField("a"))
	assert.False(t, schema.HasField("changed"))
}
