package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseFirstSelectProperty(t *testing.T) {
	tests := []struct {
		name   string
		schema []PropertyDef
		wantID string
	}{
		{
			name: "leading select property",
			schema: []PropertyDef{
				{ID: "st1", Name: "Status", Type: PropertySelect},
				{ID: "dd1", Name: "Due Date", Type: PropertyDate},
			},
			wantID: "st1",
		},
		{
			name: "leading non-select yields nil",
			schema: []PropertyDef{
				{ID: "ow1", Name: "Owner", Type: PropertyText},
				{ID: "st1", Name: "Status", Type: PropertySelect},
			},
			wantID: "",
		},
		{
			name:   "empty schema yields nil",
			schema: nil,
			wantID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Database{PropertiesSchema: tt.schema}
			got := d.FirstSelectProperty()
			if tt.wantID == "" {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.wantID, got.ID)
			}
		})
	}
}

func TestBlockChecked(t *testing.T) {
	checked := &Block{Type: BlockTodo, Properties: map[string]any{"checked": true}}
	unchecked := &Block{Type: BlockTodo, Properties: map[string]any{"checked": false}}
	bare := &Block{Type: BlockTodo}
	wrongType := &Block{Type: BlockTodo, Properties: map[string]any{"checked": "yes"}}

	assert.True(t, checked.Checked())
	assert.False(t, unchecked.Checked())
	assert.False(t, bare.Checked())
	assert.False(t, wrongType.Checked())
}

func TestIsValidBlockType(t *testing.T) {
	for _, bt := range []string{
		BlockText, BlockHeading1, BlockHeading2, BlockHeading3,
		BlockBullet, BlockNumbered, BlockTodo, BlockQuote,
		BlockCallout, BlockCode, BlockDivider,
	} {
		assert.True(t, IsValidBlockType(bt), bt)
	}
	assert.False(t, IsValidBlockType("table_of_contents"))
	assert.False(t, IsValidBlockType(""))
}
