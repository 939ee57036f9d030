package domain

// Sentiment is a discrete affective state reported for a member, either by a
// human click or by the external classifier. The classifier owns the
// vocabulary; the store keeps whatever label it is handed.
type Sentiment string

// Labels produced by the emotion classifier.
const (
	SentimentNeutral  Sentiment = "neutral"
	SentimentHappy    Sentiment = "happy"
	SentimentSad      Sentiment = "sad"
	SentimentAngry    Sentiment = "angry"
	SentimentSurprise Sentiment = "surprise"
	SentimentFear     Sentiment = "fear"
	SentimentDisgust  Sentiment = "disgust"
)

// DefaultSentiment is the value a member starts with when joining without a
// reported sentiment.
const DefaultSentiment = SentimentNeutral

// IsZero reports whether no sentiment was supplied.
func (s Sentiment) IsZero() bool {
	return s == ""
}
