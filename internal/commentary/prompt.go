package commentary

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a track announcer calling a horse racing tournament. Keep it vivid, accurate and brief. Only mention horses, times and points that appear in the data.`

// podium is how many finishers the prompt and the template mention.
const podium = 3

func buildUserMessage(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Round %d, %dm\n\nFinishing order:\n", in.Round, in.Distance)
	for i, p := range in.Placings {
		if i == podium+2 {
			fmt.Fprintf(&b, "... and %d more\n", len(in.Placings)-i)
			break
		}
		fmt.Fprintf(&b, "%d. %s  %.2fs  +%d pts\n", p.Position, p.Name, p.CompletionMs/1000, p.Points)
	}
	if in.Leader != "" {
		fmt.Fprintf(&b, "\nOverall leader: %s on %d points\n", in.Leader, in.LeaderPoints)
	}
	if in.Final {
		b.WriteString("This was the final round of the tournament.\n")
	}

	b.WriteString(`
Instructions:
1. Write a headline that names the winner.
2. Call the race in 2-3 short sentences: the winner, the margin to second place, and who else scored.
3. If this was the final round, crown the overall leader as champion.
4. Plain text only. No markdown, no emoji.`)

	return b.String()
}

// Fallback renders a recap from the results alone.
func Fallback(in Input) Recap {
	if len(in.Placings) == 0 {
		return Recap{Headline: fmt.Sprintf("Round %d: no finishers", in.Round)}
	}

	win := in.Placings[0]
	r := Recap{Headline: fmt.Sprintf("%s takes round %d over %dm", win.Name, in.Round, in.Distance)}

	if len(in.Placings) > 1 {
		second := in.Placings[1]
		margin := (second.CompletionMs - win.CompletionMs) / 1000
		r.Lines = append(r.Lines, fmt.Sprintf("%s crossed in %.2fs, %.2fs clear of %s.", win.Name, win.CompletionMs/1000, margin, second.Name))
	} else {
		r.Lines = append(r.Lines, fmt.Sprintf("%s crossed in %.2fs.", win.Name, win.CompletionMs/1000))
	}

	var scorers []string
	for _, p := range in.Placings[1:min(podium, len(in.Placings))] {
		scorers = append(scorers, fmt.Sprintf("%s %d", p.Name, p.Points))
	}
	if len(scorers) > 0 {
		r.Lines = append(r.Lines, fmt.Sprintf("Winner banks %d points; behind: %s.", win.Points, strings.Join(scorers, ", ")))
	}

	if in.Leader != "" {
		verb := "leads"
		if in.Final {
			verb = "is champion"
		}
		r.Lines = append(r.Lines, fmt.Sprintf("%s %s on %d points.", in.Leader, verb, in.LeaderPoints))
	}
	return r
}
