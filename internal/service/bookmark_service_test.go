package service

import (
	"testing"

	"coursehub-be/internal/model"
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/testutil"
	"coursehub-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarkService_BookmarkIsIdempotent(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner@example.com")
	student := testutil.CreateUser(t, f.db, "student@example.com")
	course := testutil.CreateCourse(t, f.db, owner.Id, "Algebra 1", "Math")
	svc := f.bookmarkService()

	require.NoError(t, svc.BookmarkCourse(f.ctx, student.Id, course.Id))
	require.NoError(t, svc.BookmarkCourse(f.ctx, student.Id, course.Id))

	var rows int64
	require.NoError(t, f.db.Model(&model.CourseBookmark{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	ok, err := svc.IsBookmarked(f.ctx, student.Id, course.Id)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.UnbookmarkCourse(f.ctx, student.Id, course.Id))

	require.NoError(t, f.db.Model(&model.CourseBookmark{}).Count(&rows).Error)
	assert.Zero(t, rows)
	ok, err = svc.IsBookmarked(f.ctx, student.Id, course.Id)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []string{events.CourseBookmarked, events.CourseBookmarked, events.CourseUnbookmarked}, f.events.Types())
}

func TestBookmarkService_UnbookmarkRemovesAllRows(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner@example.com")
	course := testutil.CreateCourse(t, f.db, owner.Id, "Algebra 1", "Math")
	svc := f.bookmarkService()

	// Unbookmarking something never bookmarked is fine.
	require.NoError(t, svc.UnbookmarkCourse(f.ctx, owner.Id, course.Id))
	assert.Empty(t, f.events.Types())
}

func TestBookmarkService_BookmarkMissingCourse(t *testing.T) {
	f := newFixture(t)
	student := testutil.CreateUser(t, f.db, "student@example.com")

	err := f.bookmarkService().BookmarkCourse(f.ctx, student.Id, 42)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestBookmarkService_ToggleBookmark(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner@example.com")
	course := testutil.CreateCourse(t, f.db, owner.Id, "Algebra 1", "Math")
	svc := f.bookmarkService()

	res, err := svc.ToggleBookmark(f.ctx, owner.Id, course.Id)
	require.NoError(t, err)
	assert.True(t, res.Bookmarked)

	res, err = svc.ToggleBookmark(f.ctx, owner.Id, course.Id)
	require.NoError(t, err)
	assert.False(t, res.Bookmarked)
	assert.Equal(t, course.Id, res.CourseId)
}

func TestBookmarkService_GetBookmarkedCourses(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner@example.com")
	student := testutil.CreateUser(t, f.db, "student@example.com")
	algebra := testutil.CreateCourse(t, f.db, owner.Id, "Algebra 1", "Math")
	biology := testutil.CreateCourse(t, f.db, owner.Id, "Biology", "Science")
	testutil.CreateCourse(t, f.db, owner.Id, "Chemistry", "Science")
	testutil.CreateSegment(t, f.db, algebra.Id, 0)
	testutil.CreateSegment(t, f.db, algebra.Id, 1)
	testutil.CreateSegment(t, f.db, algebra.Id, 2)
	svc := f.bookmarkService()

	empty, err := svc.GetBookmarkedCourses(f.ctx, student.Id)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, svc.BookmarkCourse(f.ctx, student.Id, algebra.Id))
	require.NoError(t, svc.BookmarkCourse(f.ctx, student.Id, biology.Id))
	require.NoError(t, svc.BookmarkCourse(f.ctx, owner.Id, biology.Id))

	courses, err := svc.GetBookmarkedCourses(f.ctx, student.Id)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Algebra 1", courses[0].Title)
	assert.Equal(t, int64(3), courses[0].TotalSegments)
	assert.Equal(t, "Biology", courses[1].Title)
	assert.Zero(t, courses[1].TotalSegments)
}
