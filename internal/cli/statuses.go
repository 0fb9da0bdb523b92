package cli

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chirp/pkg/twitter"
)

// withClient runs fn with a client and releases it afterwards.
func (c *CLI) withClient(ctx context.Context, fn func(*twitter.Client) error) error {
	client, release, err := c.newClient(ctx)
	if err != nil {
		return err
	}
	defer release()
	return fn(client)
}

// output prints v as JSON when --json is set and calls pretty otherwise.
func (c *CLI) output(v any, pretty func()) error {
	if c.jsonOutput {
		return printJSON(v)
	}
	pretty()
	return nil
}

// postOpts holds the command-line flags for the post command.
type postOpts struct {
	media   []string // local files attached to the status
	replyTo string   // status ID being replied to
}

// postCommand creates the post command.
func (c *CLI) postCommand() *cobra.Command {
	var opts postOpts

	cmd := &cobra.Command{
		Use:   "post <text>",
		Short: "Publish a status, optionally with media",
		Example: `  chirp post "Hello from the terminal"
  chirp post "Look at this" --media photo.jpg --media chart.png
  chirp post "@jack agreed" --reply-to 20`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return c.withClient(cmd.Context(), func(client *twitter.Client) error {
				spinner := newSpinnerWithContext(cmd.Context(), "Posting...")
				spinner.Start()

				var st *twitter.Status
				var err error
				if opts.replyTo != "" {
					st, err = client.Reply(cmd.Context(), opts.replyTo, text, opts.media...)
				} else {
					st, err = client.Send(cmd.Context(), text, opts.media...)
				}
				if err != nil {
					spinner.StopWithError("Post failed")
					return err
				}
				spinner.Stop()

				return c.output(st, func() {
					printSuccess("Posted %s", StyleHighlight.Render(st.IDStr))
					printStatus(st)
				})
			})
		},
	}

	cmd.Flags().StringArrayVarP(&opts.media, "media", "m", nil, "attach a media file (repeatable, up to 4)")
	cmd.Flags().StringVar(&opts.replyTo, "reply-to", "", "reply to the status with this ID")

	return cmd
}

// uploadCommand creates the upload command.
func (c *CLI) uploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a media file and print its media ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withClient(cmd.Context(), func(client *twitter.Client) error {
				spinner := newSpinnerWithContext(cmd.Context(), "Uploading "+args[0]+"...")
				spinner.Start()
				up, err := client.UploadMedia(cmd.Context(), args[0])
				if err != nil {
					spinner.StopWithError("Upload failed")
					return err
				}
				spinner.Stop()

				return c.output(up, func() {
					printSuccess("Uploaded %s", args[0])
					printKeyValue("Media ID", up.MediaIDString)
					if up.Image != nil {
						printKeyValue("Image", StyleDim.Render(up.Image.Type)+" "+StyleNumber.Render(strconv.Itoa(up.Image.Width)+"x"+strconv.Itoa(up.Image.Height)))
					}
					if up.ExpiresAfterSecs > 0 {
						printKeyValue("Expires in", strconv.Itoa(up.ExpiresAfterSecs)+"s")
					}
				})
			})
		},
	}
}

// destroyCommand creates the destroy command.
func (c *CLI) destroyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "destroy <status-id>",
		Short: "Delete one of your statuses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withClient(cmd.Context(), func(client *twitter.Client) error {
				st, err := client.Destroy(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return c.output(st, func() {
					printSuccess("Deleted %s", StyleHighlight.Render(st.IDStr))
				})
			})
		},
	}
}

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var clickable bool

	cmd := &cobra.Command{
		Use:   "show <status-id>",
		Short: "Show a single status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withClient(cmd.Context(), func(client *twitter.Client) error {
				st, err := client.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if clickable {
					printPlain(twitter.Clickable(st))
					return nil
				}
				return c.output(st, func() { printStatus(st) })
			})
		},
	}

	cmd.Flags().BoolVar(&clickable, "html", false, "print the text as HTML with linked entities")

	return cmd
}

// timelineOpts holds the command-line flags for the timeline command.
type timelineOpts struct {
	count           int
	includeRetweets bool
	excludeReplies  bool
	sinceID         string
	maxID           string
}

// timelineCommand creates the timeline command.
func (c *CLI) timelineCommand() *cobra.Command {
	var opts timelineOpts

	cmd := &cobra.Command{
		Use:   "timeline [me|friends|replies]",
		Short: "Read a timeline",
		Long: `Read one of the authenticated account's timelines:

  me       your own statuses
  friends  your statuses and those of accounts you follow (default)
  replies  statuses mentioning you

Reads are cached; when the service is unreachable a cached copy is shown.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"me", "friends", "replies"},
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := twitter.TimelineMeAndFriends
			if len(args) == 1 {
				t, err := twitter.ParseTimeline(args[0])
				if err != nil {
					return err
				}
				selector = t
			}

			return c.withClient(cmd.Context(), func(client *twitter.Client) error {
				prog := newProgress(c.Logger)
				statuses, err := client.Load(cmd.Context(), selector, twitter.LoadOptions{
					Count:           opts.count,
					IncludeRetweets: opts.includeRetweets,
					ExcludeReplies:  opts.excludeReplies,
					SinceID:         opts.sinceID,
					MaxID:           opts.maxID,
				})
				if err != nil {
					return err
				}
				if !c.jsonOutput {
					prog.done("Loaded " + strconv.Itoa(len(statuses)) + " statuses from " + selector.String())
				}
				return c.output(statuses, func() { printStatuses(statuses) })
			})
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", twitter.DefaultTimelineCount, "number of statuses to request (1-200)")
	cmd.Flags().BoolVar(&opts.includeRetweets, "retweets", false, "include retweets")
	cmd.Flags().BoolVar(&opts.excludeReplies, "no-replies", false, "exclude replies")
	cmd.Flags().StringVar(&opts.sinceID, "since", "", "only statuses newer than this ID")
	cmd.Flags().StringVar(&opts.maxID, "max", "", "only statuses up to this ID")

	return cmd
}

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var opts twitter.SearchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search recent statuses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return c.withClient(cmd.Context(), func(client *twitter.Client) error {
				res, err := client.Search(cmd.Context(), query, opts)
				if err != nil {
					return err
				}
				return c.output(res, func() {
					printStatuses(res.Statuses)
					if maxID := nextMaxID(res.Metadata.NextResults); maxID != "" {
						printNewline()
						printNextStep("More results", "chirp search "+strconv.Quote(query)+" --max "+maxID)
					}
				})
			})
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 0, "results per page (1-100)")
	cmd.Flags().StringVar(&opts.ResultType, "type", "", "result type: mixed, recent or popular")
	cmd.Flags().StringVar(&opts.Lang, "lang", "", "restrict to a language (ISO 639-1)")
	cmd.Flags().StringVar(&opts.SinceID, "since", "", "only statuses newer than this ID")
	cmd.Flags().StringVar(&opts.MaxID, "max", "", "only statuses up to this ID")
	cmd.Flags().StringVar(&opts.Until, "until", "", "only statuses before this date (YYYY-MM-DD)")

	return cmd
}

// nextMaxID extracts max_id from a search page's next_results query.
func nextMaxID(nextResults string) string {
	if nextResults == "" {
		return ""
	}
	q, err := url.ParseQuery(strings.TrimPrefix(nextResults, "?"))
	if err != nil {
		return ""
	}
	return q.Get("max_id")
}
