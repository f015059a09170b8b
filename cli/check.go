package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"timeline/app/i18n"

	"github.com/dustin/go-humanize/english"
)

// Check validates a feed file and prints one line per post with its
// publication labels. An empty path checks the built-in feed.
func Check(w io.Writer, path, localeTag string, now time.Time) error {
	locale, err := i18n.New(localeTag)
	if err != nil {
		return err
	}

	posts, err := loadPosts(path)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tAUTHOR\tBLOCKS\tPUBLISHED\tRELATIVE")
	for _, post := range posts {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n",
			post.ID,
			post.Author.Name,
			len(post.Content),
			locale.Absolute(post.PublishedAt),
			locale.Relative(post.PublishedAt, now),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	source := path
	if source == "" {
		source = "built-in feed"
	}
	_, err = fmt.Fprintf(w, "%s: %s valid\n", source, english.Plural(len(posts), "post", ""))
	return err
}
