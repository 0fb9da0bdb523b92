package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/chirp/pkg/errors"
	"github.com/matzehuels/chirp/pkg/session"
	"github.com/matzehuels/chirp/pkg/twitter"
)

// loginTimeout bounds the whole PIN flow, including the time the user needs
// to approve the application.
const loginTimeout = 10 * time.Minute

// verifyCommand creates the verify command.
func (c *CLI) verifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that the configured credentials are accepted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			return c.withClient(ctx, func(client *twitter.Client) error {
				spinner := newSpinnerWithContext(ctx, "Verifying credentials...")
				spinner.Start()

				ok, err := client.Authenticate(ctx)
				if err != nil {
					spinner.StopWithError("Verification failed")
					return err
				}
				if !ok {
					spinner.StopWithError("Credentials rejected")
					return errs.New(errs.ErrCodeUnauthorized, "the service rejected the configured credentials")
				}
				spinner.Stop()

				u, err := client.VerifyCredentials(ctx)
				if err != nil {
					return err
				}
				return c.output(u, func() {
					printSuccess("Authenticated as @%s", u.ScreenName)
					printKeyValue("User ID", u.IDStr)
				})
			})
		},
	}
}

// loginCommand creates the login command.
func (c *CLI) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authorize chirp for an account using a PIN",
		Long: `Start the PIN-based OAuth authorization flow.

You'll be given a URL to approve chirp for your account. Enter the PIN shown
after approval; the resulting access token is stored in
~/.config/chirp/sessions/ and used whenever the config carries no token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if existing := c.storedSession(ctx); existing != nil {
				printInfo("Already logged in as %s", existing.Account())
				printDetail("Run 'chirp logout' first to re-authenticate")
				return nil
			}

			_, err := c.runLogin(ctx, bufio.NewReader(cmd.InOrStdin()))
			return err
		},
	}
}

// logoutCommand creates the logout command.
func (c *CLI) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.NewCLIStore("", c.profile)
			if err != nil {
				return fmt.Errorf("open session store: %w", err)
			}
			if sess, _ := store.GetSession(cmd.Context()); sess == nil {
				printWarning("Not logged in")
				return nil
			}
			if err := store.DeleteSession(cmd.Context()); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
			printSuccess("Logged out")
			return nil
		},
	}
}

// =============================================================================
// PIN Flow Login
// =============================================================================

func (c *CLI) runLogin(ctx context.Context, in *bufio.Reader) (*session.Session, error) {
	loginCtx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	client, release, err := c.newClient(loginCtx)
	if err != nil {
		return nil, err
	}
	defer release()

	reqToken, err := client.RequestToken(loginCtx, twitter.OutOfBand)
	if err != nil {
		return nil, fmt.Errorf("request token: %w", err)
	}
	authURL := client.AuthorizeURL(reqToken)

	printNewline()
	fmt.Println(StyleTitle.Render("Authorize chirp"))
	printNewline()
	printKeyValue("URL", StyleLink.Render(authURL))
	printNewline()

	if err := openBrowser(authURL); err != nil {
		printDetail("Copy the URL above and paste it in your browser")
	} else {
		printDetail("Opening browser...")
	}
	printInline("Enter the PIN: ")

	pin, err := readLine(loginCtx, in)
	if err != nil {
		fmt.Println()
		return nil, err
	}

	tok, err := client.AccessToken(loginCtx, reqToken, pin)
	if err != nil {
		return nil, fmt.Errorf("authorization failed: %w", err)
	}

	sess, err := session.New(tok.Token, tok.Secret, tok.UserID, tok.ScreenName, 0)
	if err != nil {
		return nil, err
	}
	store, err := session.NewCLIStore("", c.profile)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	if err := store.SaveSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	printSuccess("Logged in as %s", sess.Account())
	printNextStep("Check it", "chirp verify")
	return sess, nil
}

// readLine reads one line from in, giving up when ctx is done.
func readLine(ctx context.Context, in *bufio.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			ch <- result{err: errs.Wrap(errs.ErrCodeInvalidInput, err, "read PIN")}
			return
		}
		ch <- result{line: strings.TrimSpace(line)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

func openBrowser(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("URL scheme must be http or https, got %q", parsed.Scheme)
	}
	if os.Getenv("CHIRP_NO_BROWSER") != "" {
		return fmt.Errorf("browser disabled")
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "linux":
		cmd = exec.Command("xdg-open", rawURL)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", rawURL)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
