// Package i18n holds the interface strings in French and English.
//
// Strings may contain {placeholders} which T fills from key/value pairs:
//
//	loc.T("confirm_delete", "name", "Ideas.md")
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

const (
	French  = "fr"
	English = "en"
)

var supported = []language.Tag{language.French, language.English}

var matcher = language.NewMatcher(supported)

var catalogs = map[string]map[string]string{
	French: {
		"title":              "Notebook",
		"new_folder":         "Nouveau dossier",
		"new_subfolder":      "Nouveau sous-dossier",
		"new_note":           "Nouvelle note",
		"new_note_here":      "Nouvelle note ici",
		"folder_name":        "Nom du dossier :",
		"note_name":          "Nom (sans .md) :",
		"rename":             "Renommer",
		"delete":             "Supprimer",
		"confirm_delete":     "Supprimer « {name} » ? (o/N)",
		"delete_error":       "Impossible de supprimer le fichier",
		"updated_folder":     "Dossier mis à jour",
		"choose_folder":      "Choisir un dossier :",
		"new_folder_set":     "Nouveau dossier sélectionné",
		"search":             "Rechercher",
		"search_placeholder": "Tapez un mot-clé...",
		"search_label":       "Rechercher dans toutes les notes :",
		"no_results":         "Aucun résultat",
		"save":               "Sauvegarder",
		"saved":              "Sauvegardé : {name}",
		"placeholder_note":   "Écris tes notes ici...",
		"new_name":           "Nouveau nom :",
		"error":              "Erreur",
		"change_dir":         "Changer le dossier",
		"created":            "Créé : {name}",
		"renamed":            "Renommé en {name}",
		"deleted":            "Supprimé : {name}",
		"refreshed":          "Arborescence actualisée",
		"stale":              "« {name} » n'existe plus, arborescence actualisée",
		"no_note":            "Aucune note ouverte",
		"not_note":           "« {name} » n'est pas une note",
		"copied_path":        "Chemin copié",
		"copied_content":     "Contenu copié",
		"language":           "Langue : Français",
		"help_browse":        "n note  f dossier  r renommer  d supprimer  / rechercher  c dossier racine  L langue  q quitter",
		"help_edit":          "ctrl+s sauvegarder  esc retour",
		"empty_tree":         "Aucune note. Appuyez sur n pour en créer une.",
	},
	English: {
		"title":              "Notebook",
		"new_folder":         "New Folder",
		"new_subfolder":      "New Subfolder",
		"new_note":           "New Note",
		"new_note_here":      "New Note Here",
		"folder_name":        "Folder name:",
		"note_name":          "Name (without .md):",
		"rename":             "Rename",
		"delete":             "Delete",
		"confirm_delete":     "Delete “{name}”? (y/N)",
		"delete_error":       "Failed to delete file",
		"updated_folder":     "Folder updated",
		"choose_folder":      "Choose Folder:",
		"new_folder_set":     "New folder selected",
		"search":             "Search",
		"search_placeholder": "Type a keyword...",
		"search_label":       "Search across all notes:",
		"no_results":         "No results",
		"save":               "Save",
		"saved":              "Saved {name}",
		"placeholder_note":   "Write your notes here...",
		"new_name":           "New name:",
		"error":              "Error",
		"change_dir":         "Change Folder",
		"created":            "Created {name}",
		"renamed":            "Renamed to {name}",
		"deleted":            "Deleted {name}",
		"refreshed":          "Tree refreshed",
		"stale":              "“{name}” no longer exists, tree refreshed",
		"no_note":            "No note is open",
		"not_note":           "“{name}” is not a note",
		"copied_path":        "Path copied",
		"copied_content":     "Content copied",
		"language":           "Language: English",
		"help_browse":        "n note  f folder  r rename  d delete  / search  c root folder  L language  q quit",
		"help_edit":          "ctrl+s save  esc back",
		"empty_tree":         "No notes yet. Press n to create one.",
	},
}

// Match maps any BCP 47 code to a supported language, French when nothing
// fits.
func Match(code string) string {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return French
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return French
	}
	base, _ := supported[idx].Base()
	return base.String()
}

// Localizer translates keys for one language.
type Localizer struct {
	lang string
}

// New returns a localizer for the supported language closest to code.
func New(code string) *Localizer {
	return &Localizer{lang: Match(code)}
}

// Lang is the active language code.
func (l *Localizer) Lang() string { return l.lang }

// T returns the string for key with {placeholders} filled from pairs of
// name, value arguments. Unknown keys are returned as-is.
func (l *Localizer) T(key string, args ...string) string {
	value, ok := catalogs[l.lang][key]
	if !ok {
		value = key
	}
	if len(args) < 2 {
		return value
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, "{"+args[i]+"}", args[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(value)
}

// Toggle switches between French and English and returns the new code.
func (l *Localizer) Toggle() string {
	if l.lang == French {
		l.lang = English
	} else {
		l.lang = French
	}
	return l.lang
}

// Label names the active language in that language.
func (l *Localizer) Label() string { return l.T("language") }
