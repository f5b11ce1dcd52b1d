package catalog

import "github.com/doubaokun/voltdb/internal/types"

type FieldInfo struct {
	fieldLength int
	fieldType   types.ValueType
	offset      int
}

// Schema is the ordered column list of a table. A column's offset is its
// position in that list.
type Schema struct {
	fields    []string
	fieldInfo map[string]FieldInfo
}

// NewSchema creates a new schema
func NewSchema() *Schema {
	return &Schema{
		fields:    make([]string, 0),
		fieldInfo: make(map[string]FieldInfo),
	}
}

// AddField appends a column. Re-adding a name updates its type and length in place.
func (s *Schema) AddField(name string, fieldType types.ValueType, length int) {
	info, exists := s.fieldInfo[name]
	if !exists {
		info.offset = len(s.fields)
		s.fields = append(s.fields, name)
	}
	info.fieldType = fieldType
	info.fieldLength = length
	s.fieldInfo[name] = info
}

func (s *Schema) AddIntField(name string) {
	s.AddField(name, types.ValueTypeInteger, 8)
}

func (s *Schema) AddStringField(name string, length int) {
	s.AddField(name, types.ValueTypeVarchar, length)
}

// Fields returns a copy of the field names slice
func (s *Schema) Fields() []string {
	fields := make([]string, len(s.fields))
	copy(fields, s.fields)
	return fields
}

// Type returns the type of a field
func (s *Schema) Type(fieldName string) types.ValueType {
	if info, exists := s.fieldInfo[fieldName]; exists {
		return info.fieldType
	}
	return types.ValueTypeInvalid
}

// Length returns the length of a field
func (s *Schema) Length(fieldName string) int {
	if info, exists := s.fieldInfo[fieldName]; exists {
		return info.fieldLength
	}
	return 0
}

// HasField checks if the schema contains the specified field.
func (s *Schema) HasField(fieldName string) bool {
	_, exists := s.fieldInfo[fieldName]
	return exists
}

// IndexOf returns the physical offset of a column, or -1 if it is absent.
func (s *Schema) IndexOf(fieldName string) int {
	if info, exists := s.fieldInfo[fieldName]; exists {
		return info.offset
	}
	return -1
}
