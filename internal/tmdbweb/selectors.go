package tmdbweb

import "fmt"

const (
	gridTable       = "#grid > div.k-grid-content.k-auto-scrollable > table"
	gridRows        = gridTable + " tr"
	gridAddButton   = "#grid > div.k-header.k-grid-toolbar > a"
	modalSaveButton = ".k-edit-buttons.k-state-default > a.k-button.k-button-icontext.k-primary.k-grid-update"
	airDateInput    = "#air_date_date_picker_field"

	seasonNumberContainer = `div[data-container-for="season_number"] > span`

	seasonEditColumn  = 6
	episodeEditColumn = 5
)

// FormSelectors locate one listing grid and the modal form that edits its rows.
type FormSelectors struct {
	Table      string
	Rows       string
	AddButton  string
	SaveButton string
	// Ready is visible exactly while the modal form is open.
	Ready         string
	NameInput     string
	OverviewInput string
	// DateInput is empty for records without a date.
	DateInput  string
	EditColumn int
}

// SeasonSelectors returns the selectors of the show seasons grid for the
// given translation.
func SeasonSelectors(translation string) FormSelectors {
	return FormSelectors{
		Table:         gridTable,
		Rows:          gridRows,
		AddButton:     gridAddButton,
		SaveButton:    modalSaveButton,
		Ready:         seasonNumberContainer,
		NameInput:     nameInput(translation),
		OverviewInput: overviewInput(translation),
		EditColumn:    seasonEditColumn,
	}
}

// EpisodeSelectors returns the selectors of the season episodes grid for the
// given translation.
func EpisodeSelectors(translation string) FormSelectors {
	return FormSelectors{
		Table:         gridTable,
		Rows:          gridRows,
		AddButton:     gridAddButton,
		SaveButton:    modalSaveButton,
		Ready:         nameInput(translation),
		NameInput:     nameInput(translation),
		OverviewInput: overviewInput(translation),
		DateInput:     airDateInput,
		EditColumn:    episodeEditColumn,
	}
}

// EditAction is the selector of a row's edit trigger. The zero value means
// the row has none.
type EditAction string

// editAction addresses the edit anchor of the row at 1-based position row.
func (s FormSelectors) editAction(row int) EditAction {
	return EditAction(fmt.Sprintf("%s:nth-child(%d) > td:nth-child(%d) > a", s.Rows, row, s.EditColumn))
}

func nameInput(translation string) string {
	return "#" + translation + "_name_text_input_field"
}

func overviewInput(translation string) string {
	return "#" + translation + "_overview_text_box_field"
}
