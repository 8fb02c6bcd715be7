package main

import (
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"mcuhal/family"
	"mcuhal/x/fmtx"
)

var resolveFlags string

var resolveCmd = &cobra.Command{
	Use:   "resolve [tag...]",
	Short: "Resolve build tags to the single family a build would select",
	Long: "Resolve applies the target package's rule to a tag list: exactly one family tag\n" +
		"must be present. Tags come from the arguments and from --flags, a go/tinygo flag\n" +
		"string; with neither, $GOFLAGS is read.",
	RunE: func(cmd *cobra.Command, args []string) error {
		tags := append([]string(nil), args...)
		src := resolveFlags
		if src == "" && len(args) == 0 {
			src = os.Getenv("GOFLAGS")
		}
		if src != "" {
			t, err := tagsFromFlags(src)
			if err != nil {
				return err
			}
			tags = append(tags, t...)
		}
		d, err := family.Resolve(tags)
		if err != nil {
			return err
		}
		fmtx.Fprintf(cmd.OutOrStdout(), "%s\t-tags=%s\t%s\n", d.Name, d.Tag, d.Core)
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveFlags, "flags", "", `build flags, e.g. "-tags=nrf52,softdevice -ldflags='-s'"`)
}

// tagsFromFlags pulls the -tags values out of a shell-quoted flag string.
// Both "-tags=a,b" and "-tags 'a b'" forms are accepted.
func tagsFromFlags(s string) ([]string, error) {
	words, err := shlex.Split(s)
	if err != nil {
		return nil, err
	}
	var tags []string
	for i := 0; i < len(words); i++ {
		w := strings.TrimLeft(words[i], "-")
		if !strings.HasPrefix(words[i], "-") {
			continue
		}
		var v string
		switch {
		case strings.HasPrefix(w, "tags="):
			v = strings.TrimPrefix(w, "tags=")
		case w == "tags" && i+1 < len(words):
			i++
			v = words[i]
		default:
			continue
		}
		tags = append(tags, strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' })...)
	}
	return tags, nil
}
