package constant

import "carenote-be/pkg/checkin"

// Messages is the full set of user-facing copy for one language. Product
// variants differ only in these strings, never in control flow, so the
// variance lives here as data.
type Messages struct {
	CheckinGreeting        string // args: name, case label
	CheckinGreetingNoLabel string // args: name
	AckSame                string
	AckBetter              string
	AckWorse               string
	AckOther               string
	MergeConfirm           string // args: joined titles, primary title
	DeleteConfirm          string // args: title
	RenameConfirm          string // args: old title, new title
	NoMatch                string // args: attempted target
}

var templates = map[string]Messages{
	"en": {
		CheckinGreeting:        "Hi %s, just checking in about %s. How are you feeling today?",
		CheckinGreetingNoLabel: "Hi %s, just checking in. How are you feeling today?",
		AckSame:                "Thanks for letting me know. I've noted that things are about the same.",
		AckBetter:              "That's great to hear! I've noted the improvement.",
		AckWorse:               "I'm sorry to hear that. I've noted it — please consider reaching out to your care provider.",
		AckOther:               "Thanks for your reply, I've added it to your notes.",
		MergeConfirm:           "I've merged %s into \"%s\".",
		DeleteConfirm:          "I've removed \"%s\" from your tracked concerns.",
		RenameConfirm:          "I've renamed \"%s\" to \"%s\".",
		NoMatch:                "I couldn't find a concern matching \"%s\".",
	},
	"es": {
		CheckinGreeting:        "Hola %s, quería saber cómo sigues con %s. ¿Cómo te sientes hoy?",
		CheckinGreetingNoLabel: "Hola %s, quería saber cómo sigues. ¿Cómo te sientes hoy?",
		AckSame:                "Gracias por contarme. He anotado que sigues más o menos igual.",
		AckBetter:              "¡Me alegra saberlo! He anotado la mejoría.",
		AckWorse:               "Lamento escuchar eso. Lo he anotado — considera contactar a tu médico.",
		AckOther:               "Gracias por tu respuesta, la he añadido a tus notas.",
		MergeConfirm:           "He combinado %s en \"%s\".",
		DeleteConfirm:          "He eliminado \"%s\" de tus temas de salud.",
		RenameConfirm:          "He renombrado \"%s\" a \"%s\".",
		NoMatch:                "No encontré ningún tema que coincida con \"%s\".",
	},
}

// GetMessages returns the copy for a language, falling back to English.
func GetMessages(language string) Messages {
	if m, ok := templates[language]; ok {
		return m
	}
	return templates["en"]
}

// Follow-up note entries are clinical-record text and stay in English
// regardless of the conversation language.
var followUpNotes = map[checkin.ReplyClass]string{
	checkin.ReplySame:   "Follow-up: No significant changes",
	checkin.ReplyBetter: "Follow-up: Patient reports improvement",
	checkin.ReplyWorse:  "Follow-up: Patient reports worsening",
	checkin.ReplyOther:  "Follow-up: Patient responded",
}

// FollowUpNote returns the note entry to append for a classified reply.
func FollowUpNote(class checkin.ReplyClass) string {
	return followUpNotes[class]
}

// Ack returns the acknowledgment message for a classified reply.
func (m Messages) Ack(class checkin.ReplyClass) string {
	switch class {
	case checkin.ReplySame:
		return m.AckSame
	case checkin.ReplyBetter:
		return m.AckBetter
	case checkin.ReplyWorse:
		return m.AckWorse
	default:
		return m.AckOther
	}
}
