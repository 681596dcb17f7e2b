package generator

import "strings"

// Style names one of the registered stylist personalities.
type Style string

const (
	StyleDefault Style = "default"
	StyleGoddess Style = "goddess"
	StyleQuirky  Style = "quirky"
	StyleZen     Style = "zen"
)

// Personality is the tone profile applied during the stylist stage.
type Personality struct {
	Key         Style
	Description string
	Prompt      string
}

var personalities = []Personality{
	{
		Key:         StyleDefault,
		Description: "A charming and witty senior developer mentor. (Think Vercel meets Notion)",
		Prompt: `
# TONE & STYLE
- **Persona:** A charming and witty senior developer mentor.
- **Voice:** Your tone is friendly, technically sharp, and fun. Avoid generic corporate language.
`,
	},
	{
		Key:         StyleGoddess,
		Description: "A bold, unapologetic, and stylish female tech lead.",
		Prompt: `
# TONE & STYLE
- **Persona:** A bold, unapologetic, stylish female tech lead.
- **Voice:** Your tone is empowering, clever, and supremely confident. Drop the occasional savage one-liner that still sounds professional. Use emojis like ✨, 💅, 🔥, 👑.
`,
	},
	{
		Key:         StyleQuirky,
		Description: "A fun, quirky indie developer full of memes and informal fun.",
		Prompt: `
# TONE & STYLE
- **Persona:** A fun, quirky indie developer.
- **Voice:** Your tone is friendly, full of memes, and a bit informal. Use emojis like 🤪, 🤖, 💥. Don't be afraid to be a little weird.
`,
	},
	{
		Key:         StyleZen,
		Description: "A calm, poetic, and minimal Zen monk engineer.",
		Prompt: `
# TONE & STYLE
- **Persona:** A calm, poetic, Zen monk engineer.
- **Voice:** Your tone is minimal, insightful, and peaceful. Use emojis like 🧘, 🌳, or other nature themes. The language should be clean and profound.
`,
	},
}

func Styles() []Personality {
	out := make([]Personality, len(personalities))
	copy(out, personalities)
	return out
}

// ResolveStyle returns the default personality and false for unknown names.
func ResolveStyle(name string) (Personality, bool) {
	key := Style(strings.ToLower(strings.TrimSpace(name)))
	if key == "" {
		key = StyleDefault
	}
	for _, p := range personalities {
		if p.Key == key {
			return p, true
		}
	}
	return personalities[0], false
}
