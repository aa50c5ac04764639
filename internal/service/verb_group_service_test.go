package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/mocks"
	"github.com/ruslex/ruslex-api/internal/store"
)

type verbGroupFixture struct {
	svc    VerbGroupService
	groups *mocks.MockVerbGroupStore
	verbs  *mocks.MockVerbStore
	links  *mocks.MockStudentLinkStore
}

func newVerbGroupFixture(t *testing.T) verbGroupFixture {
	t.Helper()
	groups := mocks.NewMockVerbGroupStore()
	verbs := mocks.NewMockVerbStore()
	links := mocks.NewMockStudentLinkStore()
	svc, err := NewVerbGroupService(groups, verbs, links, nil)
	require.NoError(t, err)
	return verbGroupFixture{svc: svc, groups: groups, verbs: verbs, links: links}
}

func TestVerbGroupServiceCreate(t *testing.T) {
	t.Parallel()

	f := newVerbGroupFixture(t)
	p := studentPrincipal()

	group, err := f.svc.Create(context.Background(), p, "Unit 3 verbs")
	require.NoError(t, err)

	assert.Equal(t, p.ID, group.OwnerID, "group must be owned by its creator")
	assert.Len(t, f.groups.Groups, 1)

	_, err = f.svc.Create(context.Background(), p, "")
	assert.ErrorIs(t, err, domain.ErrGroupNameEmpty)
}

func TestVerbGroupServiceGet(t *testing.T) {
	t.Parallel()

	t.Run("owner sees members", func(t *testing.T) {
		t.Parallel()
		f := newVerbGroupFixture(t)
		p := studentPrincipal()

		group, err := domain.NewVerbGroup("Unit 3 verbs", p.ID)
		require.NoError(t, err)
		f.groups.Add(group)

		verb, err := domain.NewVerb("жить/пожить", 2, "жив", nil, nil, nil)
		require.NoError(t, err)
		f.verbs.Add(verb)
		require.NoError(t, f.groups.AddVerb(context.Background(), group.ID, verb.ID))

		got, err := f.svc.Get(context.Background(), p, group.ID)
		require.NoError(t, err)
		assert.Len(t, got.Verbs, 1)
	})

	t.Run("student reads linked teacher's group", func(t *testing.T) {
		t.Parallel()
		f := newVerbGroupFixture(t)
		teacher := teacherPrincipal()
		student := studentPrincipal()

		group, err := domain.NewVerbGroup("Assigned verbs", teacher.ID)
		require.NoError(t, err)
		f.groups.Add(group)
		require.NoError(t, f.links.Link(context.Background(), student.ID, teacher.ID))

		_, err = f.svc.Get(context.Background(), student, group.ID)
		assert.NoError(t, err)
	})

	t.Run("unlinked student is denied", func(t *testing.T) {
		t.Parallel()
		f := newVerbGroupFixture(t)
		teacher := teacherPrincipal()

		group, err := domain.NewVerbGroup("Assigned verbs", teacher.ID)
		require.NoError(t, err)
		f.groups.Add(group)

		_, err = f.svc.Get(context.Background(), studentPrincipal(), group.ID)
		assert.ErrorIs(t, err, ErrNotOwned)
	})

	t.Run("teacher cannot read another teacher's group", func(t *testing.T) {
		t.Parallel()
		f := newVerbGroupFixture(t)

		group, err := domain.NewVerbGroup("Assigned verbs", teacherPrincipal().ID)
		require.NoError(t, err)
		f.groups.Add(group)

		_, err = f.svc.Get(context.Background(), teacherPrincipal(), group.ID)
		assert.ErrorIs(t, err, ErrNotOwned)
	})

	t.Run("admin reads any group", func(t *testing.T) {
		t.Parallel()
		f := newVerbGroupFixture(t)

		group, err := domain.NewVerbGroup("Assigned verbs", studentPrincipal().ID)
		require.NoError(t, err)
		f.groups.Add(group)

		_, err = f.svc.Get(context.Background(), adminPrincipal(), group.ID)
		assert.NoError(t, err)
	})
}

func TestVerbGroupServiceList(t *testing.T) {
	t.Parallel()

	f := newVerbGroupFixture(t)
	p := studentPrincipal()
	other := studentPrincipal()

	mine, err := domain.NewVerbGroup("Mine", p.ID)
	require.NoError(t, err)
	theirs, err := domain.NewVerbGroup("Theirs", other.ID)
	require.NoError(t, err)
	f.groups.Add(mine)
	f.groups.Add(theirs)

	groups, err := f.svc.List(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, mine.ID, groups[0].ID)

	all, err := f.svc.List(context.Background(), adminPrincipal())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestVerbGroupServiceRename(t *testing.T) {
	t.Parallel()

	f := newVerbGroupFixture(t)
	p := studentPrincipal()

	group, err := domain.NewVerbGroup("Old name", p.ID)
	require.NoError(t, err)
	f.groups.Add(group)

	renamed, err := f.svc.Rename(context.Background(), p, group.ID, "New name")
	require.NoError(t, err)
	assert.Equal(t, "New name", renamed.Name)

	// Another user may not rename it; admin may.
	_, err = f.svc.Rename(context.Background(), studentPrincipal(), group.ID, "Hijacked")
	assert.ErrorIs(t, err, ErrNotOwned)

	_, err = f.svc.Rename(context.Background(), adminPrincipal(), group.ID, "Admin rename")
	assert.NoError(t, err)
}

func TestVerbGroupServiceDelete(t *testing.T) {
	t.Parallel()

	f := newVerbGroupFixture(t)
	p := studentPrincipal()

	group, err := domain.NewVerbGroup("Unit 3 verbs", p.ID)
	require.NoError(t, err)
	f.groups.Add(group)

	verb, err := domain.NewVerb("жить/пожить", 2, "жив", nil, nil, nil)
	require.NoError(t, err)
	f.verbs.Add(verb)
	require.NoError(t, f.groups.AddVerb(context.Background(), group.ID, verb.ID))

	assert.ErrorIs(t, f.svc.Delete(context.Background(), studentPrincipal(), group.ID), ErrNotOwned)
	assert.NoError(t, f.svc.Delete(context.Background(), p, group.ID))
	assert.ErrorIs(t, f.svc.Delete(context.Background(), p, group.ID), store.ErrGroupNotFound)

	// Memberships go with the group; the verbs themselves stay in the
	// lexicon.
	assert.Empty(t, f.groups.Members[group.ID])
	got, err := f.verbs.GetByID(context.Background(), verb.ID)
	require.NoError(t, err)
	assert.Equal(t, verb.ID, got.ID)
}

func TestVerbGroupServiceAddVerb(t *testing.T) {
	t.Parallel()

	f := newVerbGroupFixture(t)
	p := studentPrincipal()

	group, err := domain.NewVerbGroup("Unit 3 verbs", p.ID)
	require.NoError(t, err)
	f.groups.Add(group)

	verb, err := domain.NewVerb("жить/пожить", 2, "жив", nil, nil, nil)
	require.NoError(t, err)
	f.verbs.Add(verb)

	require.NoError(t, f.svc.AddVerb(context.Background(), p, group.ID, verb.ID))
	// Adding again is a no-op, not an error.
	require.NoError(t, f.svc.AddVerb(context.Background(), p, group.ID, verb.ID))
	assert.Len(t, f.groups.Members[group.ID], 1)

	err = f.svc.AddVerb(context.Background(), p, group.ID, uuid.New())
	assert.ErrorIs(t, err, store.ErrVerbNotFound)

	err = f.svc.AddVerb(context.Background(), studentPrincipal(), group.ID, verb.ID)
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestVerbGroupServiceRemoveVerb(t *testing.T) {
	t.Parallel()

	f := newVerbGroupFixture(t)
	p := studentPrincipal()

	group, err := domain.NewVerbGroup("Unit 3 verbs", p.ID)
	require.NoError(t, err)
	f.groups.Add(group)

	verb, err := domain.NewVerb("жить/пожить", 2, "жив", nil, nil, nil)
	require.NoError(t, err)
	f.verbs.Add(verb)
	require.NoError(t, f.groups.AddVerb(context.Background(), group.ID, verb.ID))

	require.NoError(t, f.svc.RemoveVerb(context.Background(), p, group.ID, verb.ID))
	assert.Empty(t, f.groups.Members[group.ID])

	// Removing a non-member is a no-op.
	assert.NoError(t, f.svc.RemoveVerb(context.Background(), p, group.ID, verb.ID))
}
