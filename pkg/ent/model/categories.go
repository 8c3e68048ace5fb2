package model

import "slices"

// HistoricalPerson is the person type that marks a person as historical.
const HistoricalPerson = "historical person"

// PersonTypes are the known values of Person.PersonType.
var PersonTypes = []string{
	"Urheber, Unbekannt", "archaeologist", "architect", "artist", "collector",
	"excavation personnel", "explorer", "institution personnel", "mosaicist",
	"painter", "person", "potter", "sculptor", "vase painter", "Anonymous",
	"processer", "modern person", HistoricalPerson,
}

// Periods are the known values of Person.Period.
var Periods = []string{
	"Byzanz", "Griechen", "Kelten", "Provinzialrom", "Römische Kaiserzeit",
	"Römische Republik",
}

// PeriodDetails are the known values of Person.PeriodDetail.
var PeriodDetails = []string{
	"Valentinianische Dynastie",
	"Usurpator, Valens",
	"Usurpator, Theodosius",
	"Usurpator, Tetrarchie",
	"Usurpator, Philippus Arabs",
	"Usurpator, Gallienus",
	"Usurpator, Constantius II.",
	"Theodosianische Dynastie",
	"Tetrarchie",
	"Soldatenkaisertum",
	"Severische Dynastie",
	"Julisch-Claudische Dynastie",
	"Gallisches Sonderreich",
	"Flavische Dynastie",
	"Constantinische Dynastie",
	"Bürgerkrieg (68 - 69)",
	"Bürgerkrieg (193)",
	"Britannisches Sonderreich (286 ? - 297 ?)",
	"Adoptivkaisertum",
	"Boier",
}

// EngagementTypes are the values of EngagedIn.Typ.
var EngagementTypes = []string{"employed", "hired", "leading"}

// Known returns true if v is one of vals. Empty v is always known.
func Known(vals []string, v string) bool {
	return v == "" || slices.Contains(vals, v)
}
