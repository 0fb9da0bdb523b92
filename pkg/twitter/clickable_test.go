package twitter

import "testing"

func TestClickable(t *testing.T) {
	tests := []struct {
		name   string
		status *Status
		want   string
	}{
		{
			name:   "nil",
			status: nil,
			want:   "",
		},
		{
			name:   "plain text",
			status: &Status{Text: "just words &amp; more"},
			want:   "just words &amp; more",
		},
		{
			name: "entities",
			status: &Status{
				FullText: "@jack see #golang https://t.co/abc",
				Entities: &Entities{
					UserMentions: []Mention{{ScreenName: "jack", Indices: Indices{0, 5}}},
					Hashtags:     []Hashtag{{Text: "golang", Indices: Indices{10, 17}}},
					URLs:         []URLEntity{{URL: "https://t.co/abc", ExpandedURL: "https://go.dev/?a=1&b=2", DisplayURL: "go.dev", Indices: Indices{18, 34}}},
				},
			},
			want: `<a href="https://twitter.com/jack">@jack</a> see ` +
				`<a href="https://twitter.com/search?q=%23golang">#golang</a> ` +
				`<a href="https://go.dev/?a=1&amp;b=2">go.dev</a>`,
		},
		{
			name: "code point indices",
			status: &Status{
				Text: "☕ #café",
				Entities: &Entities{
					Hashtags: []Hashtag{{Text: "café", Indices: Indices{2, 7}}},
				},
			},
			want: `☕ <a href="https://twitter.com/search?q=%23caf%C3%A9">#café</a>`,
		},
		{
			name: "extended media deduplicated",
			status: &Status{
				Text: "two pics https://t.co/m",
				ExtendedEntities: &Entities{Media: []Media{
					{MediaURLHTTPS: "https://pbs.twimg.com/a.jpg", DisplayURL: "pic.twitter.com/m", Indices: Indices{9, 23}},
					{MediaURLHTTPS: "https://pbs.twimg.com/b.jpg", DisplayURL: "pic.twitter.com/m", Indices: Indices{9, 23}},
				}},
			},
			want: `two pics <a href="https://pbs.twimg.com/a.jpg">pic.twitter.com/m</a>`,
		},
		{
			name: "out of range indices ignored",
			status: &Status{
				Text:     "short",
				Entities: &Entities{Hashtags: []Hashtag{{Text: "x", Indices: Indices{3, 40}}}},
			},
			want: "short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clickable(tt.status); got != tt.want {
				t.Errorf("Clickable() =\n  %s\nwant\n  %s", got, tt.want)
			}
		})
	}
}
