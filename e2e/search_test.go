//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSearchFiltersCards(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	startGallery(t, tf)

	require.NoError(t, tf.Search("sky"))
	require.True(t, tf.OutputContainsPlain("1 of 4 images", 3*time.Second), "Only sunset is tagged sky")
	require.True(t, tf.SeePlain("?search=sky"), "Location reflects the search")

	require.NoError(t, tf.Escape())
	require.True(t, tf.OutputContainsPlain("4 of 4 images", 3*time.Second), "Escape clears the search")
}

func TestSearchWithoutMatches(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	startGallery(t, tf)

	require.NoError(t, tf.Search("zebra"))
	require.True(t, tf.OutputContainsPlain("No images match the current filters.", 3*time.Second))

	// x clears every filter
	require.NoError(t, tf.SendKeys("x"))
	require.True(t, tf.OutputContainsPlain("4 of 4 images", 3*time.Second))
}

func TestCategoryAndSortKeys(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	startGallery(t, tf)

	require.NoError(t, tf.SendKeys("c"))
	require.True(t, tf.OutputContainsPlain("category: nature", 3*time.Second), "First declared category")
	require.True(t, tf.SeePlain("2 of 4 images"))

	require.NoError(t, tf.SendKeys("s"))
	require.True(t, tf.OutputContainsPlain("sort: date", 3*time.Second))

	require.NoError(t, tf.SendKeys("o"))
	require.True(t, tf.OutputContainsPlain("order=desc", 3*time.Second))
}

func TestInitialQueryFlag(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	startGallery(t, tf, "--query", "category=food")

	require.True(t, tf.SeePlain("1 of 4 images"), "Query flag restores the category")
	require.True(t, tf.SeePlain("burger.png"))
}
