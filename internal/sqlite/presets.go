// Canned default schemas for the recognized workspace presets. Preset
// expansion is a one-time template copy: every call mints fresh property
// and option ids, so later edits to one database never propagate to
// another.
package sqlite

import "github.com/binder-notes/binder/pkg/types"

// Option colors shared across the presets.
const (
	colorGray    = "#6B7280"
	colorBlue    = "#3B82F6"
	colorGreen   = "#10B981"
	colorAmber   = "#F59E0B"
	colorRed     = "#EF4444"
	colorCrimson = "#DC2626"
	colorPurple  = "#8B5CF6"
)

func option(name, color string) types.SelectOption {
	return types.SelectOption{ID: newID(), Name: name, Color: color}
}

// projectsSchema materializes the default schema for a "projects"
// database: a Status board column first, then Priority, Due Date,
// Assignee and Tags.
func projectsSchema() []types.PropertyDef {
	return []types.PropertyDef{
		{ID: newID(), Name: "Status", Type: types.PropertySelect, Options: []types.SelectOption{
			option("Not Started", colorGray),
			option("In Progress", colorBlue),
			option("Done", colorGreen),
			option("Blocked", colorRed),
		}},
		{ID: newID(), Name: "Priority", Type: types.PropertySelect, Options: []types.SelectOption{
			option("Low", colorGray),
			option("Medium", colorAmber),
			option("High", colorRed),
			option("Urgent", colorCrimson),
		}},
		{ID: newID(), Name: "Due Date", Type: types.PropertyDate},
		{ID: newID(), Name: "Assignee", Type: types.PropertyText},
		{ID: newID(), Name: "Tags", Type: types.PropertyMultiSelect, Options: []types.SelectOption{
			option("Bug", colorRed),
			option("Feature", colorBlue),
			option("Improvement", colorGreen),
		}},
	}
}

// wikiSchema materializes the default schema for a "wiki" database.
func wikiSchema() []types.PropertyDef {
	return []types.PropertyDef{
		{ID: newID(), Name: "Status", Type: types.PropertySelect, Options: []types.SelectOption{
			option("Draft", colorGray),
			option("In Review", colorAmber),
			option("Published", colorGreen),
		}},
		{ID: newID(), Name: "Category", Type: types.PropertySelect, Options: []types.SelectOption{
			option("General", colorGray),
			option("Technical", colorBlue),
			option("Process", colorGreen),
			option("Reference", colorPurple),
		}},
		{ID: newID(), Name: "Owner", Type: types.PropertyText},
		{ID: newID(), Name: "Last Verified", Type: types.PropertyDate},
		{ID: newID(), Name: "Tags", Type: types.PropertyMultiSelect, Options: []types.SelectOption{}},
	}
}
