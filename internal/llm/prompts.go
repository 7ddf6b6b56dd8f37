package llm

import (
	"fmt"
	"sort"
	"strings"
)

// MaxPromptSourceChars caps the source text embedded in a summary prompt.
const MaxPromptSourceChars = 12000

// MaxExcerptChars caps one party's program excerpt in a topic comparison.
const MaxExcerptChars = 3000

// Prompts builds the Dutch prompts for one municipal election.
type Prompts struct {
	City string
	Year int
}

// NewPrompts creates prompts for the election in city held in year.
func NewPrompts(city string, year int) Prompts {
	return Prompts{City: city, Year: year}
}

func (p Prompts) label() string {
	return fmt.Sprintf("%s %d", p.City, p.Year)
}

// System is the system prompt shared by every request.
func (p Prompts) System() string {
	return fmt.Sprintf("Je bent een behulpzame assistent die informatie geeft over de gemeenteraadsverkiezingen in %s. "+
		"Antwoord altijd in het Nederlands. Wees beknopt en feitelijk.", p.label())
}

// ProgramSummary asks for a summary of a party's election program.
func (p Prompts) ProgramSummary(party, programText string) string {
	return fmt.Sprintf("Hieronder staat (een deel van) het verkiezingsprogramma van %s voor de gemeenteraadsverkiezingen %s.\n\n"+
		"Geef een samenvatting van maximaal 300 woorden. Benoem de belangrijkste standpunten en thema's. Schrijf in het Nederlands.\n\n"+
		"---\n%s\n---", party, p.label(), Truncate(programText, MaxPromptSourceChars))
}

// SocialSummary asks for a short summary of a candidate's recent posts.
func (p Prompts) SocialSummary(name string, posts []string) string {
	lines := make([]string, len(posts))
	for i, post := range posts {
		lines[i] = "- " + post
	}
	return fmt.Sprintf("Hieronder staan recente berichten van %s op Bluesky.\n\n%s\n\n"+
		"Geef een samenvatting van 2-3 zinnen over de thema's en standpunten die deze kandidaat op social media deelt. "+
		"Schrijf in het Nederlands.", name, strings.Join(lines, "\n\n"))
}

// MotionSummary asks for a summary of the motions a party submitted.
// Each line of overview is expected in MotionLine format.
func (p Prompts) MotionSummary(party, overview string) string {
	return fmt.Sprintf("Hieronder staat een overzicht van moties en amendementen ingediend door %s in de %s gemeenteraad.\n\n%s\n\n"+
		"Geef een samenvatting van maximaal 200 woorden over de belangrijkste thema's en prioriteiten die deze partij "+
		"via moties en amendementen naar voren brengt. Schrijf in het Nederlands.",
		party, adjective(p.City), Truncate(overview, MaxPromptSourceChars))
}

// TopicComparison asks for each party's position on topic, given an
// excerpt of its program per party name. Parties are listed by name.
func (p Prompts) TopicComparison(topic string, excerpts map[string]string) string {
	names := make([]string, 0, len(excerpts))
	for name := range excerpts {
		names = append(names, name)
	}
	sort.Strings(names)

	sections := make([]string, len(names))
	for i, name := range names {
		sections[i] = fmt.Sprintf("### %s\n%s", name, Truncate(excerpts[name], MaxExcerptChars))
	}
	return fmt.Sprintf("Onderwerp: %s\n\n"+
		"Hieronder staan relevante fragmenten uit de verkiezingsprogramma's van verschillende partijen over dit onderwerp.\n\n"+
		"%s\n\n"+
		"Geef per partij een samenvatting van hun standpunt over '%s' in 2-3 zinnen. "+
		"Antwoord in JSON-formaat: {\"partijnaam\": \"samenvatting standpunt\", ...}",
		topic, strings.Join(sections, "\n\n"), topic)
}

// MotionLine renders one motion for MotionSummary.
func MotionLine(motionType, title, result string) string {
	if motionType == "" {
		motionType = "?"
	}
	line := fmt.Sprintf("- [%s] %s", motionType, title)
	if result != "" {
		line += " (" + result + ")"
	}
	return line
}

// Question asks for an answer grounded in program fragments.
func (p Prompts) Question(question string, fragments []string) string {
	return fmt.Sprintf("Beantwoord de volgende vraag op basis van de onderstaande fragmenten uit verkiezingsprogramma's van %s partijen.\n\n"+
		"Vraag: %s\n\nRelevante fragmenten:\n%s\n\n"+
		"Geef een helder en beknopt antwoord in het Nederlands. Gebruik geen heading of titel, begin direct met de inhoud. "+
		"Gebruik gewone alinea's of een bulletlijst met streepjes (- item) als dat past. "+
		"Als de fragmenten onvoldoende informatie bevatten, geef dat dan aan.",
		adjective(p.City), question, strings.Join(fragments, "\n\n---\n\n"))
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// adjective forms the Dutch place adjective ("Amsterdamse").
func adjective(city string) string {
	if city == "" {
		return ""
	}
	return city + "se"
}
