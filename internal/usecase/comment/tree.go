package comment

import "newspress/internal/domain/entity"

// Thread is the display shape of an article's comments: top-level comments in
// received order, each carrying a flat list of replies.
type Thread struct {
	Comments []entity.Comment
	Total    int
}

// TotalCount returns the number of top-level comments plus all their replies.
func TotalCount(comments []entity.Comment) int {
	n := len(comments)
	for i := range comments {
		n += len(comments[i].Replies)
	}
	return n
}

// Find returns the comment with id anywhere in the thread.
func (t Thread) Find(id string) (entity.Comment, bool) {
	for _, c := range t.Comments {
		if c.ID == id {
			return c, true
		}
		for _, r := range c.Replies {
			if r.ID == id {
				return r, true
			}
		}
	}
	return entity.Comment{}, false
}

type node struct {
	c        entity.Comment
	parent   string // id of the comment this one answers, "" for top-level
	children []string
}

// Assemble builds a Thread from comments as the API returns them, flat
// (replies listed alongside their parents with a ParentID), pre-nested
// (replies inside Replies) or a mix of both.
//
// Replies are capped at one level: a reply to a reply is hoisted under its
// top-level ancestor, following a depth-first walk in received order, and
// every reply in the result has ParentID set to that ancestor. Replies whose
// ancestor is missing are dropped. A comment id seen twice keeps its first
// occurrence.
func Assemble(in []entity.Comment) Thread {
	nodes := make(map[string]*node)
	var top []*node // top-level comments in received order

	var visit func(c entity.Comment, nestedUnder string)
	visit = func(c entity.Comment, nestedUnder string) {
		parent := nestedUnder
		if parent == "" && c.IsReply() {
			parent = *c.ParentID
		}
		nested := c.Replies
		c.Replies = nil

		if c.ID == "" {
			// Without an id nothing can point at it; keep it only at top level.
			// Its nested replies are kept only when they name their own parent.
			if parent == "" {
				top = append(top, &node{c: c})
			}
			for _, r := range nested {
				if r.IsReply() {
					visit(r, "")
				}
			}
			return
		}
		if _, seen := nodes[c.ID]; !seen {
			n := &node{c: c, parent: parent}
			nodes[c.ID] = n
			if parent == "" {
				top = append(top, n)
			}
		}
		for _, r := range nested {
			visit(r, c.ID)
		}
	}
	for _, c := range in {
		visit(c, "")
	}

	// Link children in the order they were first seen.
	linked := make(map[string]bool, len(nodes))
	var link func(id string)
	link = func(id string) {
		n := nodes[id]
		if linked[id] || n == nil || n.parent == "" {
			return
		}
		linked[id] = true
		if p := nodes[n.parent]; p != nil {
			p.children = append(p.children, id)
		}
	}
	var walkInput func(c entity.Comment)
	walkInput = func(c entity.Comment) {
		if c.ID != "" {
			link(c.ID)
		}
		for _, r := range c.Replies {
			walkInput(r)
		}
	}
	for _, c := range in {
		walkInput(c)
	}

	out := make([]entity.Comment, 0, len(top))
	for _, n := range top {
		c := n.c
		if c.ID != "" {
			c.Replies = flatten(nodes, c.ID)
		}
		out = append(out, c)
	}
	return Thread{Comments: out, Total: TotalCount(out)}
}

// flatten collects every descendant of root depth-first, re-parented to root.
func flatten(nodes map[string]*node, root string) []entity.Comment {
	var replies []entity.Comment
	parentID := root
	visited := map[string]bool{root: true}
	var walk func(id string)
	walk = func(id string) {
		for _, child := range nodes[id].children {
			if visited[child] {
				continue
			}
			visited[child] = true
			r := nodes[child].c
			r.ParentID = &parentID
			replies = append(replies, r)
			walk(child)
		}
	}
	walk(root)
	return replies
}
