package school

import (
	"fmt"

	"github.com/samber/lo"
)

const (
	// MinutesPerDay is the length of the day axis; week minutes are
	// day*MinutesPerDay + minutes-from-midnight.
	MinutesPerDay = 1440
)

type RoomType string

const (
	Classroom   RoomType = "classroom"
	ScienceLab  RoomType = "science_lab"
	ComputerLab RoomType = "computer_lab"
	Gym         RoomType = "gym"
	SportsHall  RoomType = "sports_hall"
	ArtRoom     RoomType = "art_room"
	MusicRoom   RoomType = "music_room"
	Workshop    RoomType = "workshop"
	Library     RoomType = "library"
	Auditorium  RoomType = "auditorium"
	OtherRoom   RoomType = "other"
)

// Availability is a time window on a single day. Available=false marks
// the window as blocked for the owning teacher, class or room.
type Availability struct {
	Day          int
	StartMinutes int
	EndMinutes   int
	Available    bool
	Reason       string
}

type Teacher struct {
	Id                string
	Name              string
	Code              string
	Subjects          []string
	Availability      []Availability
	MaxPeriodsPerDay  int // 0 means no limit
	MaxPeriodsPerWeek int // 0 means no limit
	PreferredRooms    []string
}

type StudentClass struct {
	Id           string
	Name         string
	YearGroup    int
	StudentCount int
	Availability []Availability
	HomeRoom     string
}

type Subject struct {
	Id                     string
	Name                   string
	Code                   string
	Department             string
	RequiresSpecialistRoom bool
	RequiredRoomType       RoomType
}

type Room struct {
	Id           string
	Name         string
	Type         RoomType
	Capacity     int // 0 means unknown/unlimited
	Building     string
	Availability []Availability
	Equipment    []string
}

// RoomRequirement narrows the rooms a lesson may use. PreferredRooms is
// a hard inclusion list when non-empty.
type RoomRequirement struct {
	RoomType          RoomType
	MinCapacity       int
	PreferredRooms    []string
	ExcludedRooms     []string
	RequiresEquipment []string
}

type Lesson struct {
	Id                string
	TeacherId         string
	ClassId           string
	SubjectId         string
	DurationMinutes   int
	LessonsPerWeek    int
	RoomRequirement   *RoomRequirement
	NoConsecutiveDays bool
}

type Period struct {
	Id           string
	Name         string
	Day          int
	StartMinutes int
	EndMinutes   int
	IsBreak      bool
	IsLunch      bool
}

// Schedulable reports whether a lesson may occupy this period.
func (p Period) Schedulable() bool {
	return !p.IsBreak && !p.IsLunch
}

func (p Period) Duration() int {
	return p.EndMinutes - p.StartMinutes
}

type Config struct {
	SchoolName      string
	AcademicYear    string
	NumDays         int
	DefaultDuration int
}

// Input is the validated domain data the solver consumes. Reference
// integrity (teacher/class/subject/room ids) is checked upstream; the
// solver trusts the cross-references it finds here.
type Input struct {
	Config   Config
	Teachers []Teacher
	Classes  []StudentClass
	Subjects []Subject
	Rooms    []Room
	Lessons  []Lesson
	Periods  []Period
}

func (in *Input) Teacher(id string) (Teacher, bool) {
	return lo.Find(in.Teachers, func(t Teacher) bool { return t.Id == id })
}

func (in *Input) Class(id string) (StudentClass, bool) {
	return lo.Find(in.Classes, func(c StudentClass) bool { return c.Id == id })
}

func (in *Input) Subject(id string) (Subject, bool) {
	return lo.Find(in.Subjects, func(s Subject) bool { return s.Id == id })
}

func (in *Input) Room(id string) (Room, bool) {
	return lo.Find(in.Rooms, func(r Room) bool { return r.Id == id })
}

func (in *Input) Lesson(id string) (Lesson, bool) {
	return lo.Find(in.Lessons, func(l Lesson) bool { return l.Id == id })
}

func (in *Input) TeacherLessons(teacherId string) []Lesson {
	return lo.Filter(in.Lessons, func(l Lesson, _ int) bool { return l.TeacherId == teacherId })
}

func (in *Input) ClassLessons(classId string) []Lesson {
	return lo.Filter(in.Lessons, func(l Lesson, _ int) bool { return l.ClassId == classId })
}

func (in *Input) SchedulablePeriods() []Period {
	return lo.Filter(in.Periods, func(p Period, _ int) bool { return p.Schedulable() })
}

func (in *Input) PeriodsOn(day int) []Period {
	return lo.Filter(in.Periods, func(p Period, _ int) bool { return p.Day == day })
}

// TotalInstances is the number of lesson instances the week must host.
func (in *Input) TotalInstances() int {
	return lo.SumBy(in.Lessons, func(l Lesson) int { return l.LessonsPerWeek })
}

func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func TimeToMinutes(hour, minute int) int {
	return hour*60 + minute
}

var dayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func DayName(day int) string {
	if day >= 0 && day < len(dayNames) {
		return dayNames[day]
	}
	return fmt.Sprintf("Day %d", day)
}
