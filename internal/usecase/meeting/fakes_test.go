package meeting

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/events"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
)

// memDB backs every fake repository so that cross-table reads see each other's writes
type memDB struct {
	mu           sync.Mutex
	meetings     map[uuid.UUID]entities.Meeting
	folders      map[uuid.UUID]entities.MeetingFolder
	members      []entities.FolderMember
	participants map[uuid.UUID]entities.MeetingParticipant
	agenda       map[uuid.UUID]entities.MeetingAgendaItem
	minutes      map[uuid.UUID]entities.MeetingMinutes
	tasks        map[uuid.UUID]entities.MeetingTask
	general      map[uuid.UUID]entities.Task
	users        map[uuid.UUID]entities.User
	seq          time.Time
}

func newMemDB() *memDB {
	return &memDB{
		meetings:     map[uuid.UUID]entities.Meeting{},
		folders:      map[uuid.UUID]entities.MeetingFolder{},
		participants: map[uuid.UUID]entities.MeetingParticipant{},
		agenda:       map[uuid.UUID]entities.MeetingAgendaItem{},
		minutes:      map[uuid.UUID]entities.MeetingMinutes{},
		tasks:        map[uuid.UUID]entities.MeetingTask{},
		general:      map[uuid.UUID]entities.Task{},
		users:        map[uuid.UUID]entities.User{},
		seq:          time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns strictly increasing timestamps for stable ordering
func (db *memDB) tick() time.Time {
	db.seq = db.seq.Add(time.Second)
	return db.seq
}

func (db *memDB) folderWithMembers(id uuid.UUID) (*entities.MeetingFolder, bool) {
	f, ok := db.folders[id]
	if !ok {
		return nil, false
	}
	f.Members = nil
	for i := range db.members {
		if db.members[i].FolderID == id {
			m := db.members[i]
			f.Members = append(f.Members, &m)
		}
	}
	return &f, true
}

func (db *memDB) visible(m entities.Meeting, uid uuid.UUID) bool {
	if m.CreatedBy == uid {
		return true
	}
	for _, p := range db.participants {
		if p.MeetingID == m.ID && p.IsUser(uid) {
			return true
		}
	}
	if m.FolderID != nil {
		if f, ok := db.folderWithMembers(*m.FolderID); ok && f.AccessFor(uid, false).CanRead() {
			return true
		}
	}
	return false
}

// matching applies MeetingFilters without paging; callers hold the lock
func (db *memDB) matching(filters repositories.MeetingFilters) []entities.Meeting {
	var out []entities.Meeting
	for _, m := range db.meetings {
		if filters.VisibleTo != nil && !db.visible(m, *filters.VisibleTo) {
			continue
		}
		if filters.FolderID != nil && (m.FolderID == nil || *m.FolderID != *filters.FolderID) {
			continue
		}
		if filters.Status != nil && m.Status != *filters.Status {
			continue
		}
		if filters.Type != nil && m.MeetingType != *filters.Type {
			continue
		}
		if filters.From != nil && m.Date.Before(truncateDay(*filters.From)) {
			continue
		}
		if filters.To != nil && m.Date.After(truncateDay(*filters.To)) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartsAt(time.UTC).Before(out[j].StartsAt(time.UTC))
	})
	return out
}

func (db *memDB) matchingIDs(filters repositories.MeetingFilters) map[uuid.UUID]bool {
	ids := map[uuid.UUID]bool{}
	for _, m := range db.matching(filters) {
		ids[m.ID] = true
	}
	return ids
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type fakeMeetings struct{ db *memDB }

func (f fakeMeetings) Create(_ context.Context, m *entities.Meeting) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Version == 0 {
		m.Version = 1
	}
	if m.Status == "" {
		m.Status = entities.MeetingStatusScheduled
	}
	m.CreatedAt = f.db.tick()
	row := *m
	row.Folder = nil
	f.db.meetings[m.ID] = row
	return nil
}

func (f fakeMeetings) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	m, ok := f.db.meetings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if m.FolderID != nil {
		if folder, ok := f.db.folderWithMembers(*m.FolderID); ok {
			m.Folder = folder
		}
	}
	return &m, nil
}

func (f fakeMeetings) Update(_ context.Context, m *entities.Meeting) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	stored, ok := f.db.meetings[m.ID]
	if !ok || stored.Version != m.Version {
		return repositories.ErrVersionConflict
	}
	m.Version++
	row := *m
	row.Folder = nil
	f.db.meetings[m.ID] = row
	return nil
}

func (f fakeMeetings) Delete(_ context.Context, id uuid.UUID) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.meetings[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.db.meetings, id)
	for pid, p := range f.db.participants {
		if p.MeetingID == id {
			delete(f.db.participants, pid)
		}
	}
	for tid, t := range f.db.tasks {
		if t.MeetingID == id {
			delete(f.db.tasks, tid)
		}
	}
	return nil
}

func (f fakeMeetings) List(_ context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	all := f.db.matching(filters)
	total := int64(len(all))
	if filters.Offset < len(all) {
		all = all[filters.Offset:]
	} else {
		all = nil
	}
	if filters.Limit > 0 && len(all) > filters.Limit {
		all = all[:filters.Limit]
	}
	out := make([]*entities.Meeting, 0, len(all))
	for i := range all {
		out = append(out, &all[i])
	}
	return out, total, nil
}

func (f fakeMeetings) CountByFolder(_ context.Context, folderID uuid.UUID) (int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var n int64
	for _, m := range f.db.meetings {
		if m.FolderID != nil && *m.FolderID == folderID {
			n++
		}
	}
	return n, nil
}

func (f fakeMeetings) CountGrouped(_ context.Context, filters repositories.MeetingFilters, column string) (map[string]int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := map[string]int64{}
	for _, m := range f.db.matching(filters) {
		if column == "meeting_type" {
			out[string(m.MeetingType)]++
		} else {
			out[string(m.Status)]++
		}
	}
	return out, nil
}

type fakeParticipants struct{ db *memDB }

// chairTaken mirrors the partial unique index on chairman rows; callers hold mu
func (db *memDB) chairTaken(p *entities.MeetingParticipant) bool {
	if p.Role != entities.ParticipantRoleChairman {
		return false
	}
	for id, other := range db.participants {
		if id != p.ID && other.MeetingID == p.MeetingID && other.Role == entities.ParticipantRoleChairman {
			return true
		}
	}
	return false
}

func (f fakeParticipants) Create(_ context.Context, p *entities.MeetingParticipant) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if p.UserID != nil {
		for _, other := range f.db.participants {
			if other.MeetingID == p.MeetingID && other.IsUser(*p.UserID) {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	if f.db.chairTaken(p) {
		return gorm.ErrDuplicatedKey
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = f.db.tick()
	f.db.participants[p.ID] = *p
	return nil
}

func (f fakeParticipants) FindByID(_ context.Context, id uuid.UUID) (*entities.MeetingParticipant, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p, ok := f.db.participants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (f fakeParticipants) FindByMeetingAndUser(_ context.Context, meetingID, userID uuid.UUID) (*entities.MeetingParticipant, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, p := range f.db.participants {
		if p.MeetingID == meetingID && p.IsUser(userID) {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakeParticipants) FindByRole(_ context.Context, meetingID uuid.UUID, role entities.ParticipantRole) ([]*entities.MeetingParticipant, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []*entities.MeetingParticipant
	for _, p := range f.db.participants {
		if p.MeetingID == meetingID && p.Role == role {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

func (f fakeParticipants) ListByMeeting(_ context.Context, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []*entities.MeetingParticipant
	for _, p := range f.db.participants {
		if p.MeetingID == meetingID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f fakeParticipants) Update(_ context.Context, p *entities.MeetingParticipant) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.chairTaken(p) {
		return gorm.ErrDuplicatedKey
	}
	f.db.participants[p.ID] = *p
	return nil
}

func (f fakeParticipants) Delete(_ context.Context, id uuid.UUID) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	delete(f.db.participants, id)
	return nil
}

func (f fakeParticipants) CountAttendance(_ context.Context, filters repositories.MeetingFilters) (map[string]int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	ids := f.db.matchingIDs(filters)
	out := map[string]int64{}
	for _, p := range f.db.participants {
		if ids[p.MeetingID] {
			out[string(p.AttendanceStatus)]++
		}
	}
	return out, nil
}

type fakeAgenda struct{ db *memDB }

func (f fakeAgenda) Create(_ context.Context, item *entities.MeetingAgendaItem) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = f.db.tick()
	f.db.agenda[item.ID] = *item
	return nil
}

func (f fakeAgenda) FindByID(_ context.Context, id uuid.UUID) (*entities.MeetingAgendaItem, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	item, ok := f.db.agenda[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (f fakeAgenda) ListByMeeting(_ context.Context, meetingID uuid.UUID) ([]*entities.MeetingAgendaItem, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []*entities.MeetingAgendaItem
	for _, item := range f.db.agenda {
		if item.MeetingID == meetingID {
			item := item
			out = append(out, &item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f fakeAgenda) Update(_ context.Context, item *entities.MeetingAgendaItem) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.agenda[item.ID] = *item
	return nil
}

func (f fakeAgenda) Delete(_ context.Context, id uuid.UUID) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	delete(f.db.agenda, id)
	return nil
}

func (f fakeAgenda) NextPosition(_ context.Context, meetingID uuid.UUID) (int, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	next := 0
	for _, item := range f.db.agenda {
		if item.MeetingID == meetingID && item.Position >= next {
			next = item.Position + 1
		}
	}
	return next, nil
}

func (f fakeAgenda) Reorder(_ context.Context, meetingID uuid.UUID, ids []uuid.UUID) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for position, id := range ids {
		item, ok := f.db.agenda[id]
		if !ok || item.MeetingID != meetingID {
			return gorm.ErrRecordNotFound
		}
		item.Position = position
		f.db.agenda[id] = item
	}
	return nil
}

type fakeMinutes struct{ db *memDB }

func (f fakeMinutes) FindByMeeting(_ context.Context, meetingID uuid.UUID) (*entities.MeetingMinutes, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	m, ok := f.db.minutes[meetingID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (f fakeMinutes) Upsert(_ context.Context, minutes *entities.MeetingMinutes) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if existing, ok := f.db.minutes[minutes.MeetingID]; ok {
		minutes.ID = existing.ID
		minutes.CreatedAt = existing.CreatedAt
	} else {
		minutes.ID = uuid.New()
		minutes.CreatedAt = f.db.tick()
	}
	f.db.minutes[minutes.MeetingID] = *minutes
	return nil
}

type fakeTasks struct{ db *memDB }

func (f fakeTasks) CreateMeetingTask(_ context.Context, task *entities.MeetingTask, general *entities.Task) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if general != nil {
		general.ID = uuid.New()
		f.db.general[general.ID] = *general
		task.GeneralTaskID = &general.ID
	}
	task.ID = uuid.New()
	task.CreatedAt = f.db.tick()
	f.db.tasks[task.ID] = *task
	return nil
}

func (f fakeTasks) FindMeetingTask(_ context.Context, id uuid.UUID) (*entities.MeetingTask, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	t, ok := f.db.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (f fakeTasks) ListByMeeting(_ context.Context, meetingID uuid.UUID) ([]*entities.MeetingTask, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []*entities.MeetingTask
	for _, t := range f.db.tasks {
		if t.MeetingID == meetingID {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f fakeTasks) UpdateMeetingTask(_ context.Context, task *entities.MeetingTask) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.tasks[task.ID] = *task
	if task.GeneralTaskID != nil {
		g := f.db.general[*task.GeneralTaskID]
		g.Status = task.Status
		g.AssignedTo = task.AssignedTo
		g.DueDate = task.DueDate
		f.db.general[g.ID] = g
	}
	return nil
}

func (f fakeTasks) DeleteMeetingTask(_ context.Context, id uuid.UUID) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.tasks[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.db.tasks, id)
	return nil
}

func (f fakeTasks) FindTask(_ context.Context, id uuid.UUID) (*entities.Task, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	t, ok := f.db.general[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (f fakeTasks) ListTasks(_ context.Context, filters repositories.TaskFilters) ([]*entities.Task, int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []*entities.Task
	for _, t := range f.db.general {
		if filters.AssignedTo != nil && (t.AssignedTo == nil || *t.AssignedTo != *filters.AssignedTo) {
			continue
		}
		if filters.Status != nil && t.Status != *filters.Status {
			continue
		}
		t := t
		out = append(out, &t)
	}
	return out, int64(len(out)), nil
}

func (f fakeTasks) CountByStatus(_ context.Context, filters repositories.MeetingFilters) (map[string]int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	ids := f.db.matchingIDs(filters)
	out := map[string]int64{}
	for _, t := range f.db.tasks {
		if ids[t.MeetingID] {
			out[string(t.Status)]++
		}
	}
	return out, nil
}

func (f fakeTasks) ListOverdue(_ context.Context, filters repositories.MeetingFilters, today time.Time, limit int) ([]*entities.MeetingTask, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	ids := f.db.matchingIDs(filters)
	var out []*entities.MeetingTask
	for _, t := range f.db.tasks {
		if ids[t.MeetingID] && t.IsOverdue(today) {
			t := t
			out = append(out, &t)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeFolders struct{ db *memDB }

func (f fakeFolders) Create(_ context.Context, folder *entities.MeetingFolder) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	folder.ID = uuid.New()
	folder.CreatedAt = f.db.tick()
	row := *folder
	row.Members = nil
	f.db.folders[folder.ID] = row
	return nil
}

func (f fakeFolders) FindByID(_ context.Context, id uuid.UUID) (*entities.MeetingFolder, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	folder, ok := f.db.folderWithMembers(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return folder, nil
}

func (f fakeFolders) ListForUser(_ context.Context, userID *uuid.UUID) ([]*entities.MeetingFolder, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []*entities.MeetingFolder
	for id := range f.db.folders {
		folder, _ := f.db.folderWithMembers(id)
		if userID == nil || folder.AccessFor(*userID, false).CanRead() {
			out = append(out, folder)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f fakeFolders) Update(_ context.Context, folder *entities.MeetingFolder) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	row := *folder
	row.Members = nil
	f.db.folders[folder.ID] = row
	return nil
}

func (f fakeFolders) Delete(_ context.Context, id uuid.UUID) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.folders[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for mid, m := range f.db.meetings {
		if m.FolderID != nil && *m.FolderID == id {
			m.FolderID = nil
			f.db.meetings[mid] = m
		}
	}
	kept := f.db.members[:0]
	for _, m := range f.db.members {
		if m.FolderID != id {
			kept = append(kept, m)
		}
	}
	f.db.members = kept
	delete(f.db.folders, id)
	return nil
}

func (f fakeFolders) AddMember(_ context.Context, member *entities.FolderMember) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, m := range f.db.members {
		if m.FolderID == member.FolderID && m.UserID == member.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	member.ID = uuid.New()
	row := *member
	row.User = nil
	f.db.members = append(f.db.members, row)
	return nil
}

func (f fakeFolders) FindMember(_ context.Context, folderID, userID uuid.UUID) (*entities.FolderMember, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, m := range f.db.members {
		if m.FolderID == folderID && m.UserID == userID {
			return &m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakeFolders) UpdateMember(_ context.Context, member *entities.FolderMember) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for i := range f.db.members {
		if f.db.members[i].ID == member.ID {
			f.db.members[i].Role = member.Role
		}
	}
	return nil
}

func (f fakeFolders) RemoveMember(_ context.Context, folderID, userID uuid.UUID) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for i, m := range f.db.members {
		if m.FolderID == folderID && m.UserID == userID {
			f.db.members = append(f.db.members[:i], f.db.members[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeUsers struct {
	repositories.UserRepository
	db *memDB
}

func (f fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	u, ok := f.db.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
