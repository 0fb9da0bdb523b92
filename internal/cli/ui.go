package cli

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/chirp/pkg/twitter"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleAuthor = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	wrapText    = lipgloss.NewStyle().Width(80).PaddingLeft(2)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Result Display
// =============================================================================

// printStatus prints one status: author and time, the text, then counters.
func printStatus(s *twitter.Status) {
	shown := s
	var retweeter string
	if s.RetweetedStatus != nil {
		shown = s.RetweetedStatus
		if s.User != nil {
			retweeter = s.User.ScreenName
		}
	}

	header := StyleHighlight.Render(shown.IDStr)
	if shown.User != nil {
		header = styleAuthor.Render("@"+shown.User.ScreenName) + " " + StyleDim.Render(shown.IDStr)
	}
	if t, err := shown.CreatedTime(); err == nil {
		header += StyleDim.Render(" · " + t.Local().Format("Jan 2 15:04"))
	}
	if retweeter != "" {
		header += StyleDim.Render(" · retweeted by @" + retweeter)
	}
	fmt.Println(header)
	fmt.Println(wrapText.Render(html.UnescapeString(shown.Content())))

	var parts []string
	if shown.RetweetCount > 0 {
		parts = append(parts, fmt.Sprintf("%d retweets", shown.RetweetCount))
	}
	if shown.FavoriteCount > 0 {
		parts = append(parts, fmt.Sprintf("%d likes", shown.FavoriteCount))
	}
	if n := mediaCount(shown); n > 0 {
		parts = append(parts, fmt.Sprintf("%d media", n))
	}
	if len(parts) > 0 {
		fmt.Println("  " + StyleDim.Render(strings.Join(parts, " · ")))
	}
}

// printStatuses prints a list of statuses separated by blank lines.
func printStatuses(statuses []twitter.Status) {
	if len(statuses) == 0 {
		printInfo("No statuses")
		return
	}
	for i := range statuses {
		if i > 0 {
			printNewline()
		}
		printStatus(&statuses[i])
	}
}

// printUser prints an account profile.
func printUser(u *twitter.User) {
	title := StyleTitle.Render("@" + u.ScreenName)
	if u.Name != "" {
		title += " " + StyleValue.Render(u.Name)
	}
	if u.Verified {
		title += " " + styleIconSuccess.Render(iconSuccess)
	}
	fmt.Println(title)
	if u.Description != "" {
		fmt.Println(wrapText.Render(u.Description))
	}
	printKeyValue("ID", u.IDStr)
	if u.Location != "" {
		printKeyValue("Location", u.Location)
	}
	if u.URL != nil {
		printKeyValue("URL", StyleLink.Render(*u.URL))
	}
	printKeyValue("Followers", StyleNumber.Render(fmt.Sprint(u.FollowersCount)))
	printKeyValue("Following", StyleNumber.Render(fmt.Sprint(u.FriendsCount)))
	printKeyValue("Statuses", StyleNumber.Render(fmt.Sprint(u.StatusesCount)))
	if u.Protected {
		printKeyValue("Protected", "yes")
	}
}

// printJSON prints v as indented JSON.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func mediaCount(s *twitter.Status) int {
	if s.ExtendedEntities != nil {
		return len(s.ExtendedEntities.Media)
	}
	if s.Entities != nil {
		return len(s.Entities.Media)
	}
	return 0
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Utilities
// =============================================================================

// printInline prints a dim message without a trailing newline.
func printInline(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Print(StyleDim.Render(msg))
}

// printPlain prints s unstyled.
func printPlain(s string) {
	fmt.Println(s)
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
