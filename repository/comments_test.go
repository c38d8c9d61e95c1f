package repository_test

import (
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/pulseblog/api-go/repository"
)

func TestCommentCreateAndList(t *testing.T) {
	c := qt.New(t)
	db := newTestDB(t)
	author := createUser(t, db, "alice")
	commenter := createUser(t, db, "bob")
	posts := repository.NewPosts(db)
	comments := repository.NewComments(db)

	post, err := posts.Create(author.ID, "hello", nil, "")
	c.Assert(err, qt.IsNil)

	for i := 0; i < 3; i++ {
		_, err := comments.Create(post.ID, commenter.ID, fmt.Sprintf("comment %d", i))
		c.Assert(err, qt.IsNil)
	}

	list, err := comments.List(post.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.HasLen, 3)
	// Most recent first, author preloaded.
	c.Assert(list[0].Text, qt.Equals, "comment 2")
	c.Assert(list[2].Text, qt.Equals, "comment 0")
	c.Assert(list[0].Author.Username, qt.Equals, "bob")
	c.Assert(list[0].CreatedAt.IsZero(), qt.IsFalse)
}

func TestCommentValidation(t *testing.T) {
	c := qt.New(t)
	db := newTestDB(t)
	author := createUser(t, db, "alice")
	posts := repository.NewPosts(db)
	comments := repository.NewComments(db)

	post, err := posts.Create(author.ID, "hello", nil, "")
	c.Assert(err, qt.IsNil)

	_, err = comments.Create(post.ID, author.ID, "   ")
	c.Assert(repository.IsValidation(err), qt.IsTrue)

	// Anonymous callers can't comment.
	_, err = comments.Create(post.ID, 0, "hi")
	c.Assert(repository.IsAuthorization(err), qt.IsTrue)

	// The post has to exist.
	_, err = comments.Create(999, author.ID, "hi")
	c.Assert(repository.IsNotFound(err), qt.IsTrue)
}

func TestCommentListMissingPost(t *testing.T) {
	c := qt.New(t)
	db := newTestDB(t)
	comments := repository.NewComments(db)

	_, err := comments.List(999)
	c.Assert(repository.IsNotFound(err), qt.IsTrue)
}

func TestCommentListEmpty(t *testing.T) {
	c := qt.New(t)
	db := newTestDB(t)
	author := createUser(t, db, "alice")
	posts := repository.NewPosts(db)
	comments := repository.NewComments(db)

	post, err := posts.Create(author.ID, "hello", nil, "")
	c.Assert(err, qt.IsNil)

	list, err := comments.List(post.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.HasLen, 0)
}
