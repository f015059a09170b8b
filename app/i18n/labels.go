package i18n

// Labels are the fixed strings of the feed page.
type Labels struct {
	Lang          string
	Feedback      string
	Placeholder   string
	Publish       string
	DeleteComment string
	EditProfile   string
}

var labels = map[string]Labels{
	PortugueseBR: {
		Lang:          "pt-BR",
		Feedback:      "Deixe seu Feedback",
		Placeholder:   "Escreva um comentário...",
		Publish:       "Publicar",
		DeleteComment: "Deletar comentário",
		EditProfile:   "Editar seu perfil",
	},
	English: {
		Lang:          "en",
		Feedback:      "Leave your feedback",
		Placeholder:   "Write a comment...",
		Publish:       "Publish",
		DeleteComment: "Delete comment",
		EditProfile:   "Edit your profile",
	},
}

// Labels returns the page strings of the locale.
func (l *Locale) Labels() Labels {
	return labels[l.tag]
}
