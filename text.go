package main

type Project struct {
	Title       string
	Description string
	Tags        []string
	Link        string
}

type Publication struct {
	Title   string
	Venue   string
	Year    int
	Authors string
	Link    string
}

type ContactInfo struct {
	Title string
	Value string
	Href  string
}

type SocialLink struct {
	Title string
	Href  string
}

var (
	Initials = "GP"
	FullName = "Grace Park"
	Headline = "Computer Science Student & Aspiring Software Engineer"

	HeroBlurb = `Passionate about building elegant solutions to complex problems.
	Currently exploring graphics, distributed systems, and the craft of writing software that lasts.`

	AboutMe = `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
	Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
	different language, experimenting with tools, or solving tricky problems.`

	Projects = []Project{
		{
			Title: "Particle Backdrop",
			Description: `A rotating point cloud rendered from a Go render loop, recolored through a cyclic palette
			and streamed to the browser over a websocket.`,
			Tags: []string{"Go", "WebSocket", "Canvas"},
			Link: "https://github.com/username/particle-backdrop",
		},
		{
			Title: "Terminal Mail",
			Description: `A terminal-based email client built in Go with fuzzy finding,
			using a TUI framework and IMAP.`,
			Tags: []string{"Go", "TUI", "IMAP"},
			Link: "https://github.com/username/terminal-mail",
		},
		{
			Title: "Game Recommender",
			Description: `A recommendation web application that uses TF-IDF vectorization and cosine
			similarity to suggest games from content analysis, with interactive visualizations.`,
			Tags: []string{"Python", "ML", "Visualization"},
			Link: "https://github.com/username/game-recommender",
		},
	}

	Publications = []Publication{
		{
			Title:   "Interactive Point Clouds for Teaching Linear Algebra",
			Venue:   "Undergraduate Research Symposium",
			Year:    2024,
			Authors: "G. Park, J. Doe",
		},
		{
			Title:   "Measuring Perceived Smoothness of Damped Camera Motion",
			Venue:   "Student Workshop on Graphics and Interaction",
			Year:    2023,
			Authors: "G. Park",
		},
	}

	Contacts = []ContactInfo{
		{Title: "Email", Value: "student@university.edu", Href: "mailto:student@university.edu"},
		{Title: "Location", Value: "University Campus, City"},
		{Title: "Phone", Value: "+1 (555) 123-4567", Href: "tel:+15551234567"},
	}

	Socials = []SocialLink{
		{Title: "GitHub", Href: "https://github.com/username"},
		{Title: "LinkedIn", Href: "https://linkedin.com/in/username"},
		{Title: "Twitter", Href: "https://twitter.com/username"},
	}
)
