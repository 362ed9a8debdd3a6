package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ieee0824/morpholm-go/internal/modelfile"
	"github.com/ieee0824/morpholm-go/language"
	"github.com/ieee0824/morpholm-go/oov"
)

func main() {
	corpus := flag.String("corpus", "", "training corpus defining the vocabulary")
	lm := flag.String("lm", "", "language model defining the vocabulary (instead of -corpus)")
	marker := flag.String("marker", "", "join marker; stitch morphemes into words before counting")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: calc-oov (-corpus FILE | -lm FILE) [options] test-files...")
		fmt.Fprintln(os.Stderr, "  Reports the out-of-vocabulary rate of the test files.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 || (*corpus == "") == (*lm == "") {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	var opts []oov.Option
	if *marker != "" {
		opts = append(opts, oov.WithMarker(*marker))
	}

	var v *oov.Vocabulary
	if *lm != "" {
		m, err := language.LoadFile(ctx, *lm)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		v = oov.FromModel(m)
	} else {
		rc, err := modelfile.Open(ctx, *corpus)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open corpus: %v\n", err)
			os.Exit(1)
		}
		v, err = oov.FromCorpus(rc, opts...)
		rc.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "read corpus: %v\n", err)
			os.Exit(1)
		}
	}

	rep, err := oov.MeasureFiles(ctx, v, flag.Args(), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fmt.Printf("vocabulary\t%d\n", v.Len())
	fmt.Printf("tokens\t%d\toov\t%d\trate\t%.4f\n", rep.Tokens, rep.OOVTokens, rep.Rate())
	fmt.Printf("types\t%d\toov\t%d\trate\t%.4f\n", rep.Types, rep.OOVTypes, rep.TypeRate())
}
