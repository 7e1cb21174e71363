package ai

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Source tells where an answer came from.
type Source string

const (
	SourceAI       Source = "ai"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

const (
	AssistantPrompt = "你是一个企业管理助手，请回答以下问题："

	answerAttendance = "关于考勤：建议员工每天9点前签到，18点后签退。迟到或早退会影响绩效考核。"
	answerSalary     = "关于薪资：薪资由基本工资、绩效工资、奖金组成，会根据考勤情况进行扣款。"
	answerLeave      = "关于请假：请提前在系统提交请假申请，等待管理员审批。请假类型包括病假、事假、年假。"
	answerDefault    = "我是企业管理助手，可以帮您解答关于考勤、薪资、请假等问题。请问有什么可以帮助您的？"

	adviceLow    = "员工表现良好，请继续保持"
	adviceMedium = "员工近期考勤较差，建议关注工作状态"
	adviceHigh   = "员工考勤异常，流失风险较高，建议及时沟通"

	DistributionLow    = "部门平均薪资偏低，建议调整"
	DistributionHigh   = "部门平均薪资较高，成本控制需注意"
	DistributionNormal = "薪资分布合理"

	NoEmployeesMessage    = "该部门暂无员工"
	UnsupportedReportType = "暂不支持该类型报表"
)

var (
	lowSalaryLine  = decimal.NewFromInt(5000)
	highSalaryLine = decimal.NewFromInt(15000)
)

// FallbackAnswer picks a canned answer by keyword.
func FallbackAnswer(question string) string {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "考勤") || strings.Contains(q, "attendance"):
		return answerAttendance
	case strings.Contains(q, "薪资") || strings.Contains(q, "salary") || strings.Contains(q, "payroll"):
		return answerSalary
	case strings.Contains(q, "请假") || strings.Contains(q, "leave"):
		return answerLeave
	default:
		return answerDefault
	}
}

// Risk is a turnover assessment.
type Risk struct {
	Score  int
	Level  RiskLevel
	Advice string
}

// RuleRisk scores turnover risk from monthly late and absence counts.
func RuleRisk(lateCount, absenceCount int) Risk {
	switch {
	case lateCount > 5 || absenceCount > 4:
		return Risk{Score: 90, Level: RiskHigh, Advice: adviceHigh}
	case lateCount > 3 || absenceCount > 2:
		return Risk{Score: 70, Level: RiskMedium, Advice: adviceMedium}
	default:
		return Risk{Score: 0, Level: RiskLow, Advice: adviceLow}
	}
}

// ClampScore bounds a score to 0..100.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// NormalizeLevel maps free-form levels (including 低/中/高) to a RiskLevel.
// The score decides when the level is unrecognised.
func NormalizeLevel(level string, score int) RiskLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "LOW", "低":
		return RiskLow
	case "MEDIUM", "MIDDLE", "中":
		return RiskMedium
	case "HIGH", "高":
		return RiskHigh
	}
	switch {
	case score >= 80:
		return RiskHigh
	case score >= 50:
		return RiskMedium
	default:
		return RiskLow
	}
}

// RuleDistribution classifies a department's average base salary.
func RuleDistribution(avg decimal.Decimal) string {
	switch {
	case avg.LessThan(lowSalaryLine):
		return DistributionLow
	case avg.GreaterThan(highSalaryLine):
		return DistributionHigh
	default:
		return DistributionNormal
	}
}

// AverageSalary divides the sum of known salaries by the headcount. Missing
// salaries count as zero.
func AverageSalary(salaries []*decimal.Decimal) decimal.Decimal {
	if len(salaries) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, s := range salaries {
		if s != nil {
			total = total.Add(*s)
		}
	}
	return total.Div(decimal.NewFromInt(int64(len(salaries)))).Round(2)
}

// ReportType values accepted by GenerateReport.
const (
	ReportEmployee   = "employee"
	ReportSalary     = "salary"
	ReportAttendance = "attendance"
)
