package inbox

import (
	"time"

	"github.com/nhle/tempinbox/internal/mailtm"
	"github.com/nhle/tempinbox/internal/model"
)

// parseTime accepts the API's RFC 3339 timestamps. Unparseable values
// become the zero time rather than failing the whole list.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func subjectOrDefault(s string) string {
	if s == "" {
		return model.NoSubject
	}
	return s
}

// toSummaries maps the API list into summaries, keeping API order.
func toSummaries(msgs []mailtm.Message) []model.MessageSummary {
	out := make([]model.MessageSummary, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, model.MessageSummary{
			ID:            m.ID,
			SenderAddress: m.From.Address,
			Subject:       subjectOrDefault(m.Subject),
			ReceivedAt:    parseTime(m.CreatedAt),
			Seen:          m.Seen,
		})
	}
	return out
}

// SelectBody prefers the first HTML body and falls back to the
// plain-text intro snippet.
func SelectBody(d *mailtm.MessageDetail) (body string, isHTML bool) {
	if len(d.HTML) > 0 {
		return d.HTML[0], true
	}
	return d.Intro, false
}

func toDetail(d *mailtm.MessageDetail) model.MessageDetail {
	body, isHTML := SelectBody(d)
	return model.MessageDetail{
		ID:            d.ID,
		Subject:       subjectOrDefault(d.Subject),
		SenderAddress: d.From.Address,
		ReceivedAt:    parseTime(d.CreatedAt),
		BodyContent:   body,
		IsHTML:        isHTML,
	}
}
