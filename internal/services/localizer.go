package services

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	MsgTripStartedTitle = "push_notifications.trip_started_title"
	MsgTripStartedBody  = "push_notifications.trip_started_body"
)

var pushMessages = map[string]map[string]string{
	"en": {
		MsgTripStartedTitle: "Trip Started",
		MsgTripStartedBody:  "Your driver has started the trip. Have a safe ride!",
	},
	"es": {
		MsgTripStartedTitle: "Viaje iniciado",
		MsgTripStartedBody:  "Tu conductor ha iniciado el viaje. ¡Buen viaje!",
	},
	"fr": {
		MsgTripStartedTitle: "Course démarrée",
		MsgTripStartedBody:  "Votre chauffeur a démarré la course. Bon voyage !",
	},
	"ar": {
		MsgTripStartedTitle: "بدأت الرحلة",
		MsgTripStartedBody:  "بدأ السائق رحلتك. رحلة آمنة!",
	},
}

type Localizer interface {
	Translate(lang, key string) string
}

type catalogLocalizer struct {
	catalog   *catalog.Builder
	matcher   language.Matcher
	supported []language.Tag
}

// NewLocalizer builds a localizer over the bundled push texts. Unknown
// languages resolve to defaultLang.
func NewLocalizer(defaultLang string) Localizer {
	fallback := language.Make(defaultLang)
	builder := catalog.NewBuilder(catalog.Fallback(fallback))

	supported := []language.Tag{fallback}
	for lang, msgs := range pushMessages {
		tag := language.Make(lang)
		for key, text := range msgs {
			_ = builder.SetString(tag, key, text)
		}
		if tag != fallback {
			supported = append(supported, tag)
		}
	}

	return &catalogLocalizer{
		catalog:   builder,
		matcher:   language.NewMatcher(supported),
		supported: supported,
	}
}

func (l *catalogLocalizer) Translate(lang, key string) string {
	tag := l.supported[0]
	if lang != "" {
		if _, idx, confidence := l.matcher.Match(language.Make(lang)); confidence != language.No {
			tag = l.supported[idx]
		}
	}

	return message.NewPrinter(tag, message.Catalog(l.catalog)).Sprintf(key)
}
