// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content implements the post and comment repository on top of a
// single JSON blob in the key-value store. Every mutating call reads the
// whole collection, changes it and writes it back.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/olegiv/ocms-blog/internal/id"
	"github.com/olegiv/ocms-blog/internal/kv"
	"github.com/olegiv/ocms-blog/internal/model"
)

// ErrNotFound is returned when a post id does not exist.
var ErrNotFound = errors.New("post not found")

// errNullCollection marks a stored JSON null, which decodes without error.
var errNullCollection = errors.New("stored collection is null")

// Latency holds the artificial delays applied before each operation resolves.
type Latency struct {
	List    time.Duration // GetPosts
	Get     time.Duration // GetPost
	Write   time.Duration // CreatePost, UpdatePost, DeletePost
	Comment time.Duration // AddComment, DeleteComment
}

// DefaultLatency returns the delays used when BLOG_LATENCY_SCALE is 1.
func DefaultLatency() Latency {
	return Latency{
		List:    500 * time.Millisecond,
		Get:     300 * time.Millisecond,
		Write:   500 * time.Millisecond,
		Comment: 300 * time.Millisecond,
	}
}

// Scale multiplies every delay by f. A non-positive f disables the delays.
func (l Latency) Scale(f float64) Latency {
	if f <= 0 {
		return Latency{}
	}
	scale := func(d time.Duration) time.Duration { return time.Duration(float64(d) * f) }
	return Latency{
		List:    scale(l.List),
		Get:     scale(l.Get),
		Write:   scale(l.Write),
		Comment: scale(l.Comment),
	}
}

// Options configures a Repository. The zero value has no latency.
type Options struct {
	Latency Latency
	Now     id.Clock
	Logger  *slog.Logger

	// Seed returns the collection written when the store is empty or unreadable.
	// Defaults to SamplePosts.
	Seed func() []model.Post
}

// Repository owns the canonical post collection.
type Repository struct {
	store   kv.Store
	latency Latency
	now     id.Clock
	ids     *id.Sequence
	logger  *slog.Logger
	seed    func() []model.Post
	sleep   func(time.Duration)

	// mu serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

// New creates a repository over store.
func New(store kv.Store, opts Options) *Repository {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Seed == nil {
		opts.Seed = SamplePosts
	}
	return &Repository{
		store:   store,
		latency: opts.Latency,
		now:     opts.Now,
		ids:     id.NewSequence(opts.Now),
		logger:  opts.Logger,
		seed:    opts.Seed,
		sleep:   time.Sleep,
	}
}

// wait emulates a round trip. It deliberately ignores cancellation: once an
// operation is issued it runs to completion.
func (r *Repository) wait(d time.Duration) {
	if d > 0 {
		r.sleep(d)
	}
}

// Load returns the stored collection, seeding the store first when it is
// empty. An unreadable blob is logged and replaced by the seed data.
func (r *Repository) Load(ctx context.Context) ([]model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(context.WithoutCancel(ctx))
}

func (r *Repository) load(ctx context.Context) ([]model.Post, error) {
	data, err := r.store.Get(ctx, kv.KeyContentStore)
	if errors.Is(err, kv.ErrNotFound) {
		r.logger.Info("content store empty, seeding sample posts")
		return r.reseed(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("reading content store: %w", err)
	}

	var posts []model.Post
	err = json.Unmarshal(data, &posts)
	if err == nil && posts == nil {
		err = errNullCollection
	}
	if err != nil {
		r.logger.Warn("content store is unreadable, discarding it and re-seeding",
			"category", model.EventCategoryContent,
			"error", err,
			"bytes", len(data),
		)
		return r.reseed(ctx)
	}
	for i := range posts {
		posts[i] = posts[i].Clone()
	}
	return posts, nil
}

func (r *Repository) reseed(ctx context.Context) ([]model.Post, error) {
	posts := r.seed()
	if err := r.save(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *Repository) save(ctx context.Context, posts []model.Post) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("encoding content store: %w", err)
	}
	if err := r.store.Set(ctx, kv.KeyContentStore, data); err != nil {
		return fmt.Errorf("writing content store: %w", err)
	}
	return nil
}

// Reset replaces the stored collection with the seed data.
func (r *Repository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.reseed(context.WithoutCancel(ctx))
	return err
}

// GetPosts returns all posts in stored order.
func (r *Repository) GetPosts(ctx context.Context) ([]model.Post, error) {
	r.wait(r.latency.List)
	return r.Load(ctx)
}

// GetPost returns the post with the given id or ErrNotFound.
func (r *Repository) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	r.wait(r.latency.Get)

	posts, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(posts, postID)
	if i < 0 {
		return nil, ErrNotFound
	}
	return &posts[i], nil
}

// CreatePost stores a new post at the front of the collection. The id,
// timestamps, author snapshot and empty comment list are assigned here.
func (r *Repository) CreatePost(ctx context.Context, in model.PostInput, author model.AuthorRef) (*model.Post, error) {
	r.wait(r.latency.Write)
	ctx = context.WithoutCancel(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	tags := slices.Clone(in.Tags)
	if tags == nil {
		tags = []string{}
	}
	post := model.Post{
		ID:         r.ids.Next(),
		Title:      in.Title,
		Excerpt:    in.Excerpt,
		Content:    in.Content,
		Author:     author,
		Category:   in.Category,
		Tags:       tags,
		CoverImage: in.CoverImage,
		CreatedAt:  now,
		UpdatedAt:  now,
		Comments:   []model.Comment{},
	}

	posts = slices.Insert(posts, 0, post)
	if err := r.save(ctx, posts); err != nil {
		return nil, err
	}

	r.logger.Debug("post created", "post_id", post.ID, "author_id", author.ID)
	created := post.Clone()
	return &created, nil
}

// UpdatePost merges patch over the stored post, refreshes UpdatedAt and keeps
// the post in place. Returns ErrNotFound for an unknown id.
func (r *Repository) UpdatePost(ctx context.Context, postID string, patch model.PostPatch) (*model.Post, error) {
	r.wait(r.latency.Write)
	ctx = context.WithoutCancel(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(posts, postID)
	if i < 0 {
		return nil, ErrNotFound
	}

	patch.Apply(&posts[i])
	posts[i].UpdatedAt = r.now().UTC()

	if err := r.save(ctx, posts); err != nil {
		return nil, err
	}

	r.logger.Debug("post updated", "post_id", postID)
	updated := posts[i].Clone()
	return &updated, nil
}

// DeletePost removes a post and its comments. It reports false when the id
// was not present.
func (r *Repository) DeletePost(ctx context.Context, postID string) (bool, error) {
	r.wait(r.latency.Write)
	ctx = context.WithoutCancel(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(posts, postID)
	if i < 0 {
		return false, nil
	}

	posts = slices.Delete(posts, i, i+1)
	if err := r.save(ctx, posts); err != nil {
		return false, err
	}

	r.logger.Debug("post deleted", "post_id", postID)
	return true, nil
}

// AddComment appends a comment to the end of the post's comment list.
// Returns ErrNotFound for an unknown post.
func (r *Repository) AddComment(ctx context.Context, postID, text string, author model.AuthorRef) (*model.Comment, error) {
	r.wait(r.latency.Comment)
	ctx = context.WithoutCancel(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(posts, postID)
	if i < 0 {
		return nil, ErrNotFound
	}

	comment := model.Comment{
		ID:        r.ids.Next(),
		PostID:    postID,
		Author:    author,
		Content:   text,
		CreatedAt: r.now().UTC(),
	}
	posts[i].Comments = append(posts[i].Comments, comment)

	if err := r.save(ctx, posts); err != nil {
		return nil, err
	}

	r.logger.Debug("comment added", "post_id", postID, "comment_id", comment.ID)
	return &comment, nil
}

// DeleteComment removes a comment from its post. Returns ErrNotFound for an
// unknown post and false when the comment id was not present.
func (r *Repository) DeleteComment(ctx context.Context, postID, commentID string) (bool, error) {
	r.wait(r.latency.Comment)
	ctx = context.WithoutCancel(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(posts, postID)
	if i < 0 {
		return false, ErrNotFound
	}
	j := posts[i].CommentIndex(commentID)
	if j < 0 {
		return false, nil
	}

	posts[i].Comments = slices.Delete(posts[i].Comments, j, j+1)
	if err := r.save(ctx, posts); err != nil {
		return false, err
	}

	r.logger.Debug("comment deleted", "post_id", postID, "comment_id", commentID)
	return true, nil
}

func indexOf(posts []model.Post, postID string) int {
	return slices.IndexFunc(posts, func(p model.Post) bool { return p.ID == postID })
}
