package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type link struct {
	label string
	href  string
}

type linkGroup struct {
	title string
	links []link
}

const (
	brandName    = "Jai Guru Astro Remedy"
	contactEmail = "info@jaiguruastroremedy.com"
	contactPhone = "+919876543210"
)

var footerGroups = []linkGroup{
	{
		title: "Quick Links",
		links: []link{
			{"Home", "/"},
			{"Book Consultation", "/booking"},
			{"Courses", "/courses"},
			{"Products", "/products"},
			{"About Arup Shastri", "/about"},
		},
	},
	{
		title: "Services",
		links: []link{
			{"Video Consultation", "/booking?type=video"},
			{"Audio Consultation", "/booking?type=audio"},
			{"Chat Consultation", "/booking?type=chat"},
			{"In-Person Reading", "/booking?type=in-person"},
			{"Astrological Remedies", "/products"},
		},
	},
	{
		title: "Legal",
		links: []link{
			{"Privacy Policy", "/privacy"},
			{"Terms of Service", "/terms"},
			{"Disclaimer", "/disclaimer"},
			{"Refund Policy", "/refund"},
		},
	},
}

var socialLinks = []link{
	{"Facebook", "https://facebook.com/jaiguruastroremedy"},
	{"Twitter", "https://twitter.com/jaiguruastro"},
	{"Instagram", "https://instagram.com/jaiguruastroremedy"},
}

// renderFooter draws the static site footer. It holds no state; only the
// copyright year changes.
func renderFooter(year, width int) string {
	heading := lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	linkStyle := lipgloss.NewStyle().Foreground(colorText)

	column := func(title string, lines []string) string {
		body := make([]string, 0, len(lines)+1)
		body = append(body, heading.Render(title))
		for _, l := range lines {
			body = append(body, linkStyle.Render(l))
		}
		return lipgloss.NewStyle().MarginRight(4).Render(strings.Join(body, "\n"))
	}

	brand := column("✦ "+brandName, []string{
		mutedStyle.Render("Vedic astrology guidance"),
		mutedStyle.Render("for life's important decisions."),
		"",
		"✉ " + contactEmail,
		"☎ " + contactPhone,
		"🌐 Available Globally",
	})

	cols := []string{brand}
	for _, g := range footerGroups {
		lines := make([]string, 0, len(g.links))
		for _, l := range g.links {
			lines = append(lines, fmt.Sprintf("%s %s", l.label, mutedStyle.Render(l.href)))
		}
		cols = append(cols, column(g.title, lines))
	}

	var grid string
	if width > 0 && width < 100 {
		grid = lipgloss.JoinVertical(lipgloss.Left, cols...)
	} else {
		grid = lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	}

	social := make([]string, 0, len(socialLinks))
	for _, l := range socialLinks {
		social = append(social, l.label+" "+mutedStyle.Render(l.href))
	}

	bottom := strings.Join([]string{
		strings.Join(social, "  ·  "),
		fmt.Sprintf("© %d %s. All rights reserved.  🌟 Years of Excellence  🔮 Trusted by Clients Worldwide", year, brandName),
		mutedStyle.Render("Important Disclaimer: astrological guidance is not a substitute for professional medical, legal or financial advice."),
	}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(colorBorder).
		PaddingTop(1).
		Render(grid + "\n\n" + bottom)
}
