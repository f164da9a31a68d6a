// Package i18n holds translations of the labels printed around conversions.
// Conversion errors are shown verbatim and are not translated.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	MsgOutput         = "Output"
	MsgError          = "Error"
	MsgMode           = "Mode: %s"
	MsgLive           = "Live mode: %v"
	MsgSettings       = "Delimiter: %q, prefix: %q, uppercase: %v, encoding: %s"
	MsgHistoryEmpty   = "No conversions yet."
	MsgHistoryCleared = "History cleared."
	MsgCleared        = "Cleared."
	MsgUnknownCommand = "Unknown command %q. Type :help for a list of commands."
	MsgNoEntry        = "No history entry %q."
	MsgThemeSwitched  = "Switched to theme %q."
	MsgLangSwitched   = "Switched to language %q."
	MsgGoodbye        = "Bye."
)

var Supported = []language.Tag{language.English, language.Spanish, language.German}

var matcher = language.NewMatcher(Supported)

func init() {
	set := func(tag language.Tag, pairs ...string) {
		for i := 0; i+1 < len(pairs); i += 2 {
			if err := message.SetString(tag, pairs[i], pairs[i+1]); err != nil {
				panic(fmt.Sprintf("i18n: register %v message %q: %v", tag, pairs[i], err))
			}
		}
	}

	set(language.English,
		MsgOutput, "Output",
		MsgError, "Error",
		MsgMode, "Mode: %s",
		MsgLive, "Live mode: %v",
		MsgSettings, "Delimiter: %q, prefix: %q, uppercase: %v, encoding: %s",
		MsgHistoryEmpty, "No conversions yet.",
		MsgHistoryCleared, "History cleared.",
		MsgCleared, "Cleared.",
		MsgUnknownCommand, "Unknown command %q. Type :help for a list of commands.",
		MsgNoEntry, "No history entry %q.",
		MsgThemeSwitched, "Switched to theme %q.",
		MsgLangSwitched, "Switched to language %q.",
		MsgGoodbye, "Bye.",
	)
	set(language.Spanish,
		MsgOutput, "Salida",
		MsgError, "Error",
		MsgMode, "Modo: %s",
		MsgLive, "Modo en vivo: %v",
		MsgSettings, "Delimitador: %q, prefijo: %q, mayúsculas: %v, codificación: %s",
		MsgHistoryEmpty, "Todavía no hay conversiones.",
		MsgHistoryCleared, "Historial borrado.",
		MsgCleared, "Borrado.",
		MsgUnknownCommand, "Comando desconocido %q. Escribe :help para ver los comandos.",
		MsgNoEntry, "No existe la entrada %q.",
		MsgThemeSwitched, "Tema cambiado a %q.",
		MsgLangSwitched, "Idioma cambiado a %q.",
		MsgGoodbye, "Adiós.",
	)
	set(language.German,
		MsgOutput, "Ausgabe",
		MsgError, "Fehler",
		MsgMode, "Modus: %s",
		MsgLive, "Live-Modus: %v",
		MsgSettings, "Trennzeichen: %q, Präfix: %q, Großbuchstaben: %v, Kodierung: %s",
		MsgHistoryEmpty, "Noch keine Umwandlungen.",
		MsgHistoryCleared, "Verlauf gelöscht.",
		MsgCleared, "Geleert.",
		MsgUnknownCommand, "Unbekannter Befehl %q. Mit :help werden alle Befehle angezeigt.",
		MsgNoEntry, "Kein Verlaufseintrag %q.",
		MsgThemeSwitched, "Thema %q aktiviert.",
		MsgLangSwitched, "Sprache %q aktiviert.",
		MsgGoodbye, "Tschüss.",
	)
}

// Match returns the supported language closest to lang. Unparseable input falls
// back to English.
func Match(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	_, index, _ := matcher.Match(tag)
	return Supported[index]
}

// NewPrinter returns a printer for the supported language closest to lang.
func NewPrinter(lang string) *message.Printer {
	return message.NewPrinter(Match(lang))
}

// Names lists the supported languages as BCP 47 strings.
func Names() []string {
	names := make([]string, len(Supported))
	for i, t := range Supported {
		names[i] = t.String()
	}
	return names
}
