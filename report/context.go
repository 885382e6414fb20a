package report

// Render contexts, one per template. JSON tags are the placeholder names.

type ReportCardContext struct {
	StudentName   string      `json:"student_name"`
	StudentID     string      `json:"student_id"`
	AcademicYear  string      `json:"academic_year"`
	Semester      string      `json:"semester"`
	BirthDate     string      `json:"birth_date"`
	BirthPlace    string      `json:"birth_place"`
	Address       string      `json:"address"`
	ParentName    string      `json:"parent_name"`
	ParentPhone   string      `json:"parent_phone"`
	Grades        []GradeLine `json:"grades"`
	TotalSubjects int         `json:"total_subjects"`
	AverageScore  string      `json:"average_score"`
	GradeA        int         `json:"grade_a"`
	GradeB        int         `json:"grade_b"`
	GradeC        int         `json:"grade_c"`
	GradeD        int         `json:"grade_d"`
	GradeE        int         `json:"grade_e"`
	ReportDate    string      `json:"report_date"`
}

type GradeLine struct {
	SubjectName     string  `json:"subject_name"`
	AssignmentScore float64 `json:"assignment_score"`
	MidtermScore    float64 `json:"midterm_score"`
	FinalScore      float64 `json:"final_score"`
	TotalScore      float64 `json:"total_score"`
	Grade           string  `json:"grade"`
}

type ClassListContext struct {
	ClassName       string       `json:"class_name"`
	Level           string       `json:"level"`
	AcademicYear    string       `json:"academic_year"`
	HomeroomTeacher string       `json:"homeroom_teacher"`
	TotalStudents   int          `json:"total_students"`
	MaxStudents     int          `json:"max_students"`
	Students        []RosterLine `json:"students"`
	ReportDate      string       `json:"report_date"`
}

type RosterLine struct {
	No          int    `json:"no"`
	StudentID   string `json:"student_id"`
	FullName    string `json:"full_name"`
	Gender      string `json:"gender"`
	BirthDate   string `json:"birth_date"`
	ParentName  string `json:"parent_name"`
	ParentPhone string `json:"parent_phone"`
}

type AttendanceContext struct {
	StudentName          string           `json:"student_name"`
	StudentID            string           `json:"student_id"`
	AcademicYear         string           `json:"academic_year"`
	Month                int              `json:"month"`
	MonthName            string           `json:"month_name"`
	Year                 int              `json:"year"`
	TotalDays            int              `json:"total_days"`
	PresentDays          int              `json:"present_days"`
	AbsentDays           int              `json:"absent_days"`
	SickDays             int              `json:"sick_days"`
	PermissionDays       int              `json:"permission_days"`
	AttendancePercentage string           `json:"attendance_percentage"`
	AttendanceRecords    []AttendanceLine `json:"attendance_records"`
	ReportDate           string           `json:"report_date"`
}

type AttendanceLine struct {
	Date    string `json:"date"`
	Subject string `json:"subject"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

type TeacherScheduleContext struct {
	TeacherName       string         `json:"teacher_name"`
	TeacherID         string         `json:"teacher_id"`
	Email             string         `json:"email"`
	Phone             string         `json:"phone"`
	TotalClasses      int            `json:"total_classes"`
	ScheduleMonday    []ScheduleLine `json:"schedule_monday"`
	ScheduleTuesday   []ScheduleLine `json:"schedule_tuesday"`
	ScheduleWednesday []ScheduleLine `json:"schedule_wednesday"`
	ScheduleThursday  []ScheduleLine `json:"schedule_thursday"`
	ScheduleFriday    []ScheduleLine `json:"schedule_friday"`
	ScheduleSaturday  []ScheduleLine `json:"schedule_saturday"`
	ScheduleSunday    []ScheduleLine `json:"schedule_sunday"`
	ReportDate        string         `json:"report_date"`
}

type ScheduleLine struct {
	SubjectName string `json:"subject_name"`
	ClassName   string `json:"class_name"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}
