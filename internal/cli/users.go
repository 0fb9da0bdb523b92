package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chirp/pkg/twitter"
)

// userCommand creates the user command.
func (c *CLI) userCommand() *cobra.Command {
	var byID bool

	cmd := &cobra.Command{
		Use:   "user <screen-name>",
		Short: "Show an account profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withClient(cmd.Context(), func(client *twitter.Client) error {
				var u *twitter.User
				var err error
				if byID {
					u, err = client.LoadUserInfoByID(cmd.Context(), args[0])
				} else {
					u, err = client.LoadUserInfo(cmd.Context(), args[0])
				}
				if err != nil {
					return err
				}
				return c.output(u, func() { printUser(u) })
			})
		},
	}

	cmd.Flags().BoolVar(&byID, "id", false, "treat the argument as a numeric user ID")

	return cmd
}

// followersOpts holds the command-line flags for the followers command.
type followersOpts struct {
	cursor  string
	count   int
	details bool // list full accounts instead of IDs
}

// followersCommand creates the followers command.
func (c *CLI) followersCommand() *cobra.Command {
	var opts followersOpts

	cmd := &cobra.Command{
		Use:   "followers <screen-name>",
		Short: "List an account's followers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := twitter.PageOptions{Cursor: opts.cursor, Count: opts.count}
			return c.withClient(cmd.Context(), func(client *twitter.Client) error {
				if opts.details {
					list, err := client.LoadUserFollowersList(cmd.Context(), args[0], page)
					if err != nil {
						return err
					}
					return c.output(list, func() {
						for _, u := range list.Users {
							fmt.Println(styleAuthor.Render("@"+u.ScreenName) + " " + StyleDim.Render(u.Name))
						}
						printCursor(args[0], list.Cursor, "--details")
					})
				}

				ids, err := client.LoadUserFollowers(cmd.Context(), args[0], page)
				if err != nil {
					return err
				}
				return c.output(ids, func() {
					for _, id := range ids.IDs {
						printPlain(id)
					}
					printCursor(args[0], ids.Cursor, "")
				})
			})
		},
	}

	cmd.Flags().StringVar(&opts.cursor, "cursor", "", "page cursor from a previous call")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "page size")
	cmd.Flags().BoolVar(&opts.details, "details", false, "list accounts instead of IDs")

	return cmd
}

// printCursor points to the next page of a cursored listing.
func printCursor(screenName string, cur twitter.Cursor, extra string) {
	if !cur.HasNext() {
		return
	}
	next := "chirp followers " + screenName + " --cursor " + cur.NextCursorStr
	if extra != "" {
		next += " " + extra
	}
	fmt.Println(StyleDim.Render(iconArrow+" next page:") + " " + styleCommand.Render(next))
}

// followCommand creates the follow command.
func (c *CLI) followCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "follow <screen-name>",
		Short: "Follow an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withClient(cmd.Context(), func(client *twitter.Client) error {
				u, err := client.Follow(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return c.output(u, func() {
					if u.Protected {
						printSuccess("Requested to follow @%s", u.ScreenName)
						return
					}
					printSuccess("Following @%s", u.ScreenName)
				})
			})
		},
	}
}

// unfollowCommand creates the unfollow command.
func (c *CLI) unfollowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unfollow <screen-name>",
		Short: "Unfollow an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withClient(cmd.Context(), func(client *twitter.Client) error {
				u, err := client.Unfollow(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return c.output(u, func() { printSuccess("Unfollowed @%s", u.ScreenName) })
			})
		},
	}
}

// dmCommand creates the dm command.
func (c *CLI) dmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dm <recipient> <text>",
		Short: "Send a direct message",
		Long:  `Send a direct message. The recipient is a numeric user ID or a screen name.`,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")
			return c.withClient(cmd.Context(), func(client *twitter.Client) error {
				dm, err := client.SendDirectMessage(cmd.Context(), args[0], text)
				if err != nil {
					return err
				}
				return c.output(dm, func() {
					printSuccess("Message sent to %s", args[0])
					printDetail("Event %s", dm.ID)
				})
			})
		},
	}
}
