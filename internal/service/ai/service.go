package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/ai"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/cache"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	turnoverSystemPrompt = "你是一名人力资源分析专家。请根据员工当月考勤数据评估离职风险，" +
		"只输出一个JSON对象：{\"risk_score\": 0到100的整数, \"risk_level\": \"LOW|MEDIUM|HIGH\", \"advice\": \"一句中文建议\"}"
	salarySystemPrompt = "你是一名薪酬分析专家。请根据部门薪资数据给出分析，" +
		"只输出一个JSON对象：{\"distribution\": \"一句中文结论\", \"suggestions\": [\"建议1\", \"建议2\"]}"
	reportSystemPrompt = "你是一名企业人力资源分析师，请用简洁的中文总结以下报表数据，不超过100字。"
)

type AIServiceImpl struct {
	completer ai.Completer
	memo      cache.Cache
	group     singleflight.Group

	employeeRepo   employee.EmployeeRepository
	departmentRepo department.DepartmentRepository
	attendanceRepo attendance.AttendanceRepository
	salaryRepo     salary.SalaryRepository

	location *time.Location
	now      func() time.Time
}

func NewAIService(
	completer ai.Completer,
	memo cache.Cache,
	employeeRepo employee.EmployeeRepository,
	departmentRepo department.DepartmentRepository,
	attendanceRepo attendance.AttendanceRepository,
	salaryRepo salary.SalaryRepository,
	location *time.Location,
) ai.AIService {
	if location == nil {
		location = time.UTC
	}
	return &AIServiceImpl{
		completer:      completer,
		memo:           memo,
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		attendanceRepo: attendanceRepo,
		salaryRepo:     salaryRepo,
		location:       location,
		now:            time.Now,
	}
}

func (s *AIServiceImpl) currentMonth() string {
	return s.now().In(s.location).Format("2006-01")
}

// ask returns a memoised answer or calls the model once per distinct prompt
// pair, collapsing concurrent identical calls. Only answers accepted by
// validate are stored. The shared call is detached from the first caller's
// cancellation; the llm client's HTTP timeout bounds it.
func (s *AIServiceImpl) ask(ctx context.Context, system, user string, validate func(string) error) (string, ai.Source, error) {
	key := cache.Key(system, user)

	if answer, ok, err := s.memo.Get(ctx, key); err != nil {
		slog.Warn("AI cache read failed", "error", err)
	} else if ok {
		return answer, ai.SourceCache, nil
	}

	ch := s.group.DoChan(key, func() (any, error) {
		callCtx := context.WithoutCancel(ctx)
		answer, err := s.completer.Complete(callCtx, system, user)
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return "", ai.ErrEmptyAnswer
		}
		if validate != nil {
			if err := validate(answer); err != nil {
				return "", err
			}
		}
		if err := s.memo.Set(callCtx, key, answer); err != nil {
			slog.Warn("AI cache write failed", "error", err)
		}
		return answer, nil
	})

	select {
	case <-ctx.Done():
		return "", "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", "", res.Err
		}
		return res.Val.(string), ai.SourceAI, nil
	}
}

// extractJSONObject returns the outermost {...} span of text.
func extractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", ai.ErrNoJSONObject
	}
	return text[start : end+1], nil
}

// Chat implements ai.AIService.
func (s *AIServiceImpl) Chat(ctx context.Context, req ai.ChatRequest) (ai.ChatResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return ai.ChatResponse{}, ai.ErrEmptyQuestion
	}

	answer, source, err := s.ask(ctx, ai.AssistantPrompt, question, nil)
	if err != nil {
		slog.Warn("AI chat fell back to canned answer", "error", err)
		return ai.ChatResponse{Answer: ai.FallbackAnswer(question), Source: ai.SourceFallback}, nil
	}
	return ai.ChatResponse{Answer: answer, Source: source}, nil
}

type turnoverAnswer struct {
	RiskScore *float64 `json:"risk_score"`
	RiskLevel string   `json:"risk_level"`
	Advice    string   `json:"advice"`
}

func parseTurnoverAnswer(text string) (ai.Risk, error) {
	obj, err := extractJSONObject(text)
	if err != nil {
		return ai.Risk{}, err
	}
	var parsed turnoverAnswer
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return ai.Risk{}, fmt.Errorf("decode turnover answer: %w", err)
	}
	if parsed.RiskScore == nil {
		return ai.Risk{}, errors.New("turnover answer has no risk_score")
	}

	score := ai.ClampScore(int(math.Round(*parsed.RiskScore)))
	return ai.Risk{
		Score:  score,
		Level:  ai.NormalizeLevel(parsed.RiskLevel, score),
		Advice: strings.TrimSpace(parsed.Advice),
	}, nil
}

// AnalyzeTurnoverRisk implements ai.AIService.
func (s *AIServiceImpl) AnalyzeTurnoverRisk(ctx context.Context, employeeID int64) (ai.TurnoverRiskResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return ai.TurnoverRiskResponse{}, err
	}

	month := s.currentMonth()
	stats, err := s.attendanceRepo.Statistics(ctx, emp.ID, month)
	if err != nil {
		return ai.TurnoverRiskResponse{}, fmt.Errorf("failed to get attendance statistics: %w", err)
	}

	risk := ai.RuleRisk(stats.LateCount, stats.AbsenceCount)
	source := ai.SourceFallback

	prompt := fmt.Sprintf("员工：%s\n月份：%s\n迟到次数：%d\n早退次数：%d\n缺勤次数：%d\n正常出勤：%d",
		emp.Name, month, stats.LateCount, stats.EarlyLeaveCount, stats.AbsenceCount, stats.NormalCount)
	validate := func(answer string) error {
		_, err := parseTurnoverAnswer(answer)
		return err
	}
	if answer, src, err := s.ask(ctx, turnoverSystemPrompt, prompt, validate); err != nil {
		slog.Warn("AI turnover analysis fell back to rules", "employee_id", emp.ID, "error", err)
	} else if parsed, err := parseTurnoverAnswer(answer); err != nil {
		slog.Warn("AI turnover answer unusable", "employee_id", emp.ID, "error", err)
	} else {
		if parsed.Advice == "" {
			parsed.Advice = risk.Advice
		}
		risk = parsed
		source = src
	}

	return ai.TurnoverRiskResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Month:        month,
		LateCount:    stats.LateCount,
		AbsenceCount: stats.AbsenceCount,
		RiskScore:    risk.Score,
		RiskLevel:    risk.Level,
		Advice:       risk.Advice,
		Source:       source,
	}, nil
}

type salaryAnswer struct {
	Distribution string   `json:"distribution"`
	Suggestions  []string `json:"suggestions"`
}

func parseSalaryAnswer(text string) (salaryAnswer, error) {
	obj, err := extractJSONObject(text)
	if err != nil {
		return salaryAnswer{}, err
	}
	var parsed salaryAnswer
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return salaryAnswer{}, fmt.Errorf("decode salary answer: %w", err)
	}
	parsed.Distribution = strings.TrimSpace(parsed.Distribution)
	if parsed.Distribution == "" {
		return salaryAnswer{}, errors.New("salary answer has no distribution")
	}
	return parsed, nil
}

// AnalyzeSalary implements ai.AIService.
func (s *AIServiceImpl) AnalyzeSalary(ctx context.Context, departmentID int64) (ai.SalaryAnalysisResponse, error) {
	dept, err := s.departmentRepo.GetByID(ctx, departmentID)
	if err != nil {
		return ai.SalaryAnalysisResponse{}, err
	}

	emps, err := s.employeeRepo.ListByDepartment(ctx, departmentID)
	if err != nil {
		return ai.SalaryAnalysisResponse{}, fmt.Errorf("failed to list employees by department: %w", err)
	}
	if len(emps) == 0 {
		return ai.SalaryAnalysisResponse{DepartmentID: departmentID, Message: ai.NoEmployeesMessage}, nil
	}

	salaries := make([]*decimal.Decimal, 0, len(emps))
	for _, emp := range emps {
		salaries = append(salaries, emp.Salary)
	}
	avg := ai.AverageSalary(salaries)

	resp := ai.SalaryAnalysisResponse{
		DepartmentID:  departmentID,
		EmployeeCount: len(emps),
		AvgSalary:     &avg,
		Distribution:  ai.RuleDistribution(avg),
		Source:        ai.SourceFallback,
	}

	prompt := fmt.Sprintf("部门：%s\n员工人数：%d\n平均基本工资：%s", dept.Name, len(emps), avg.StringFixed(2))
	validate := func(answer string) error {
		_, err := parseSalaryAnswer(answer)
		return err
	}
	if answer, src, err := s.ask(ctx, salarySystemPrompt, prompt, validate); err != nil {
		slog.Warn("AI salary analysis fell back to rules", "department_id", departmentID, "error", err)
	} else if parsed, err := parseSalaryAnswer(answer); err != nil {
		slog.Warn("AI salary answer unusable", "department_id", departmentID, "error", err)
	} else {
		resp.Distribution = parsed.Distribution
		resp.Suggestions = parsed.Suggestions
		resp.Source = src
	}

	return resp, nil
}

// GenerateReport implements ai.AIService.
func (s *AIServiceImpl) GenerateReport(ctx context.Context, req ai.GenerateReportRequest) (ai.ReportResponse, error) {
	month := req.Month
	if month == "" {
		month = s.currentMonth()
	}

	var resp ai.ReportResponse
	var summary string

	switch req.Type {
	case ai.ReportEmployee:
		var (
			counts employee.StatusCounts
			byDept []employee.DepartmentHeadcount
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			if counts, err = s.employeeRepo.CountByStatus(gctx); err != nil {
				return fmt.Errorf("failed to count employees: %w", err)
			}
			return nil
		})
		g.Go(func() (err error) {
			if byDept, err = s.employeeRepo.CountByDepartment(gctx); err != nil {
				return fmt.Errorf("failed to count employees by department: %w", err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return ai.ReportResponse{}, err
		}

		resp = ai.ReportResponse{
			ReportType:        ai.ReportEmployee,
			TotalEmployees:    &counts.Total,
			ActiveEmployees:   &counts.Active,
			ResignedEmployees: &counts.Resigned,
			Departments:       make([]ai.DepartmentHeadcount, 0, len(byDept)),
		}
		for _, d := range byDept {
			resp.Departments = append(resp.Departments, ai.DepartmentHeadcount{
				DepartmentID:   d.DepartmentID,
				DepartmentName: d.DepartmentName,
				Count:          d.Count,
			})
		}
		summary = fmt.Sprintf("员工总数%d人，其中在职%d人，离职%d人，共%d个部门有在职员工。",
			counts.Total, counts.Active, counts.Resigned, len(byDept))

	case ai.ReportSalary:
		sum, err := s.salaryRepo.Summary(ctx, month)
		if err != nil {
			return ai.ReportResponse{}, fmt.Errorf("failed to summarise salaries: %w", err)
		}
		resp = ai.ReportResponse{
			ReportType:  ai.ReportSalary,
			Month:       month,
			SalaryCount: &sum.Count,
			PaidCount:   &sum.PaidCount,
			TotalAmount: &sum.TotalAmount,
			AvgAmount:   &sum.AvgAmount,
		}
		summary = fmt.Sprintf("%s共生成薪资记录%d条，已发放%d条，薪资总额%s元，人均%s元。",
			month, sum.Count, sum.PaidCount, sum.TotalAmount.StringFixed(2), sum.AvgAmount.StringFixed(2))

	case ai.ReportAttendance:
		stats, err := s.attendanceRepo.StatusCounts(ctx, month)
		if err != nil {
			return ai.ReportResponse{}, fmt.Errorf("failed to count attendance: %w", err)
		}
		resp = ai.ReportResponse{
			ReportType:      ai.ReportAttendance,
			Month:           month,
			NormalCount:     &stats.NormalCount,
			LateCount:       &stats.LateCount,
			EarlyLeaveCount: &stats.EarlyLeaveCount,
			AbsenceCount:    &stats.AbsenceCount,
		}
		summary = fmt.Sprintf("%s共有考勤记录%d条：正常%d次，迟到%d次，早退%d次，缺勤%d次。",
			month, stats.TotalDays, stats.NormalCount, stats.LateCount, stats.EarlyLeaveCount, stats.AbsenceCount)

	default:
		return ai.ReportResponse{ReportType: req.Type, Message: ai.UnsupportedReportType}, nil
	}

	data, err := json.Marshal(resp)
	resp.Summary = summary
	resp.SummarySource = ai.SourceFallback
	if err != nil {
		return resp, nil
	}
	if answer, src, err := s.ask(ctx, reportSystemPrompt, string(data), nil); err != nil {
		slog.Warn("AI report summary fell back to rules", "type", req.Type, "error", err)
	} else {
		resp.Summary = answer
		resp.SummarySource = src
	}

	return resp, nil
}

// PurgeCache implements ai.AIService.
func (s *AIServiceImpl) PurgeCache(ctx context.Context) (int, error) {
	return s.memo.Purge(ctx)
}
