package markdown_test

import "github.com/yaklabco/basalt/pkg/mdast"

func rng(start, end int) mdast.SourceRange {
	return mdast.Range(start, end)
}

func p(text string, r mdast.SourceRange) mdast.Node {
	return mdast.NewNode(&mdast.Paragraph{Text: mdast.NewText(text)}, r)
}

func heading(level mdast.HeadingLevel, text string, r mdast.SourceRange) mdast.Node {
	return mdast.NewNode(&mdast.Heading{Level: level, Text: mdast.NewText(text)}, r)
}

func blockquote(nodes []mdast.Node, r mdast.SourceRange) mdast.Node {
	return mdast.NewNode(&mdast.BlockQuote{Nodes: nodes}, r)
}

func callout(kind mdast.CalloutKind, nodes []mdast.Node, r mdast.SourceRange) mdast.Node {
	return mdast.NewNode(&mdast.BlockQuote{Kind: kind, Nodes: nodes}, r)
}

func list(kind mdast.ListKind, nodes []mdast.Node, r mdast.SourceRange) mdast.Node {
	return mdast.NewNode(&mdast.List{Kind: kind, Nodes: nodes}, r)
}

func item(text string, r mdast.SourceRange) mdast.Node {
	return mdast.NewNode(&mdast.Item{Text: mdast.NewText(text)}, r)
}

func task(kind mdast.TaskListItemKind, text string, r mdast.SourceRange) mdast.Node {
	return mdast.NewNode(&mdast.TaskListItem{Kind: kind, Text: mdast.NewText(text)}, r)
}

func code(lang, text string, r mdast.SourceRange) mdast.Node {
	return mdast.NewNode(&mdast.CodeBlock{Lang: lang, Text: mdast.NewText(text)}, r)
}
