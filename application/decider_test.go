package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FyreX-opensource-design/gitpm/application"
	"github.com/FyreX-opensource-design/gitpm/domain"
	testdoubles "github.com/FyreX-opensource-design/gitpm/test"
	"github.com/FyreX-opensource-design/gitpm/test/domain/entitybuilders"
)

func TestUpdateDecider_Decide(t *testing.T) {
	t.Parallel()

	record := entitybuilders.NewInstalledRecordBuilder().
		WithName("widget").
		WithURL("https://github.com/acme/widget.git").
		WithCommitHash("aaaa1111").
		BuildRecord()

	t.Run("should report no update when the check script exits zero", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &testdoubles.SpyVCS{}
		runner := &testdoubles.SpyRunner{ScriptExitCodes: map[string]int{"check.sh": 0}}
		repos := &testdoubles.SpyRepoStore{
			FileLists: map[string][]string{"widget": {"check.sh"}},
		}
		decider := application.NewUpdateDecider(vcs, runner, repos)

		// when
		status := decider.Decide(context.Background(), record)

		// then
		assert.Equal(t, domain.NoUpdate, status)
		assert.Len(t, runner.RanScripts, 1)
	})

	t.Run("should report an update when the check script exits one", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &testdoubles.SpyVCS{}
		runner := &testdoubles.SpyRunner{ScriptExitCodes: map[string]int{"check.sh": 1}}
		repos := &testdoubles.SpyRepoStore{
			FileLists: map[string][]string{"widget": {"check.sh"}},
		}
		decider := application.NewUpdateDecider(vcs, runner, repos)

		// when
		status := decider.Decide(context.Background(), record)

		// then
		assert.Equal(t, domain.UpdateAvailable, status)
	})

	t.Run("should fall back to commit comparison on an unexpected exit code", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &testdoubles.SpyVCS{
			RemoteHeads: map[string]string{record.URL: "bbbb2222"},
		}
		runner := &testdoubles.SpyRunner{ScriptExitCodes: map[string]int{"check.sh": 2}}
		repos := &testdoubles.SpyRepoStore{
			FileLists: map[string][]string{"widget": {"check.sh"}},
		}
		decider := application.NewUpdateDecider(vcs, runner, repos)

		// when
		status := decider.Decide(context.Background(), record)

		// then
		assert.Equal(t, domain.UpdateAvailable, status)
	})

	t.Run("should compare commits when no check script exists", func(t *testing.T) {
		t.Parallel()

		// given - remote head matches the recorded commit
		vcs := &testdoubles.SpyVCS{
			RemoteHeads: map[string]string{record.URL: "aaaa1111"},
		}
		runner := &testdoubles.SpyRunner{}
		repos := &testdoubles.SpyRepoStore{}
		decider := application.NewUpdateDecider(vcs, runner, repos)

		// when
		status := decider.Decide(context.Background(), record)

		// then
		assert.Equal(t, domain.NoUpdate, status)
		assert.Empty(t, runner.RanScripts)
	})

	t.Run("should be indeterminate when the remote cannot be queried", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &testdoubles.SpyVCS{RemoteErr: assert.AnError}
		decider := application.NewUpdateDecider(vcs, &testdoubles.SpyRunner{}, &testdoubles.SpyRepoStore{})

		// when
		status := decider.Decide(context.Background(), record)

		// then
		assert.Equal(t, domain.Indeterminate, status)
	})
}
