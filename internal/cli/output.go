package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case QueueJoined:
		o.printQueueJoined(v)
	case QueueStats:
		o.printQueueStats(v)
	case Rating:
		o.printRating(v)
	case MatchHistory:
		o.printMatchHistory(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// QueueJoined response type (matches API)
type QueueJoined struct {
	Status     string  `json:"status"`
	QueueClass string  `json:"queue_class"`
	Rating     int     `json:"rating"`
	MatchID    *string `json:"match_id,omitempty"`
}

// QueueStats response type
type QueueStats struct {
	Stats struct {
		Waiting map[string]int `json:"waiting"`
	} `json:"stats"`
}

// Rating response type
type Rating struct {
	PlayerID       string `json:"player_id"`
	Rating         int    `json:"rating"`
	Tier           string `json:"tier"`
	Division       string `json:"division,omitempty"`
	PlacementCount int    `json:"placement_count"`
	IsPlacement    bool   `json:"is_placement"`
}

// MatchHistory response type
type MatchHistory struct {
	Matches []MatchSummary `json:"matches"`
}

// MatchSummary response type
type MatchSummary struct {
	MatchID     string `json:"match_id"`
	QueueClass  string `json:"queue_class"`
	Player1     string `json:"player1"`
	Player2     string `json:"player2"`
	Score1      int    `json:"score1"`
	Score2      int    `json:"score2"`
	Winner      string `json:"winner,omitempty"`
	Forfeit     bool   `json:"forfeit"`
	Delta1      int    `json:"rating_delta1"`
	Delta2      int    `json:"rating_delta2"`
	CompletedAt string `json:"completed_at"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printQueueJoined(q QueueJoined) {
	fmt.Printf("Status: %s\n", q.Status)
	fmt.Printf("Queue: %s\n", q.QueueClass)
	fmt.Printf("Rating: %d\n", q.Rating)
	if q.MatchID != nil {
		fmt.Printf("Match: %s\n", *q.MatchID)
	}
}

func (o *Output) printQueueStats(q QueueStats) {
	fmt.Printf("Ranked waiting: %d\n", q.Stats.Waiting["ranked"])
	fmt.Printf("Unranked waiting: %d\n", q.Stats.Waiting["unranked"])
}

func (o *Output) printRating(r Rating) {
	fmt.Printf("Player: %s\n", r.PlayerID)
	fmt.Printf("Rating: %d\n", r.Rating)
	if r.Division != "" {
		fmt.Printf("Tier: %s %s\n", r.Tier, r.Division)
	} else {
		fmt.Printf("Tier: %s\n", r.Tier)
	}
	if r.IsPlacement {
		fmt.Printf("Placement matches: %d of 10\n", r.PlacementCount)
	}
}

func (o *Output) printMatchHistory(h MatchHistory) {
	if len(h.Matches) == 0 {
		fmt.Println("No matches")
		return
	}
	for _, m := range h.Matches {
		result := fmt.Sprintf("%s %d - %d %s", m.Player1, m.Score1, m.Score2, m.Player2)
		if m.Forfeit {
			result += " (forfeit)"
		}
		fmt.Printf("%s [%s] %s\n", m.MatchID, m.QueueClass, result)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
