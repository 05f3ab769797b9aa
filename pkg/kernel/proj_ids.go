package kernel

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (r JobID) String() string { return string(r) }
func (r JobID) IsEmpty() bool  { return string(r) == "" }

type CompanyID string

func NewCompanyID(id string) CompanyID { return CompanyID(id) }
func (r CompanyID) String() string     { return string(r) }
func (r CompanyID) IsEmpty() bool      { return string(r) == "" }

type CategoryID string

func NewCategoryID(id string) CategoryID { return CategoryID(id) }
func (r CategoryID) String() string      { return string(r) }
func (r CategoryID) IsEmpty() bool       { return string(r) == "" }

type ProfileID string

func NewProfileID(id string) ProfileID { return ProfileID(id) }
func (r ProfileID) String() string     { return string(r) }
func (r ProfileID) IsEmpty() bool      { return string(r) == "" }

type ResumeID string

func NewResumeID(id string) ResumeID { return ResumeID(id) }
func (r ResumeID) String() string    { return string(r) }
func (r ResumeID) IsEmpty() bool     { return string(r) == "" }

type AppliedJobID string

func NewAppliedJobID(id string) AppliedJobID { return AppliedJobID(id) }
func (r AppliedJobID) String() string        { return string(r) }
func (r AppliedJobID) IsEmpty() bool         { return string(r) == "" }
