package main

import (
	"context"
	"fmt"
	"strings"

	"masterylog/internal/models"
)

func runVocab(a *app, ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args, "add", "search", "delete", "import")
	if err != nil {
		return err
	}
	switch sub {
	case "add":
		return vocabAdd(a, ctx, rest)
	case "search":
		return vocabSearch(a, ctx, rest)
	case "import":
		return vocabImport(a, ctx, rest)
	default:
		return vocabDelete(a, ctx, rest)
	}
}

func vocabAdd(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("vocab add")
	var v models.VocabularyEntry
	fs.StringVarP(&v.RussianWord, "word", "w", "", "Russian word (required)")
	fs.StringVarP(&v.EnglishTranslation, "translation", "t", "", "English translation (required)")
	fs.StringVarP(&v.Subject, "subject", "s", "", "Subject")
	fs.StringVar(&v.MaterialID, "material", "", "Material id")
	_ = fs.Parse(args)

	if err := a.vocabulary.Upsert(ctx, &v); err != nil {
		return err
	}
	saved, err := a.vocabulary.Get(ctx, v.RussianWord)
	if err != nil {
		return err
	}
	fmt.Printf("%s = %s (reviewed %d times)\n", saved.RussianWord, saved.EnglishTranslation, saved.ReviewCount)
	return nil
}

func vocabSearch(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("vocab search")
	_ = fs.Parse(args)
	term := strings.Join(fs.Args(), " ")

	entries, err := a.vocabulary.Search(ctx, term)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No matching words")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tRUSSIAN\tENGLISH\tSUBJECT\tREVIEWS\tLAST REVIEWED")
	for _, v := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			v.ID, v.RussianWord, v.EnglishTranslation, orDash(v.Subject), v.ReviewCount,
			formatTime(v.LastReviewedAt, a.loc))
	}
	return w.Flush()
}

func vocabDelete(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("vocab delete")
	_ = fs.Parse(args)
	id, err := idArg(fs)
	if err != nil {
		return err
	}
	if err := a.vocabulary.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted word %d\n", id)
	return nil
}

func vocabImport(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("vocab import")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return usageError("expected the path of a .csv or .xlsx file")
	}

	result, err := a.vocabulary.ImportFile(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Printf("Processed %d rows: %d imported, %d skipped\n", result.TotalProcessed, result.Imported, result.Skipped)
	for _, e := range result.Errors {
		fmt.Printf("  %s\n", e)
	}
	return nil
}
