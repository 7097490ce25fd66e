package utils

import (
	"fmt"
	"math/rand"

	"github.com/mozillazg/go-pinyin"
	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var roles = []domain.Role{
	domain.RoleEmployee,
	domain.RoleManager,
	domain.RoleAdmin,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

var timeZoneMarkers = []string{
	"Asia/Shanghai", "Asia/Urumqi", "Europe/Moscow", "Asia/Yekaterinburg", "Asia/Vladivostok",
}

func GenerateRandomTradingPoint() *domain.TradingPoint {
	return &domain.TradingPoint{
		Name:           "门店" + GenerateRandomID(3, 3),
		TimeZoneMarker: timeZoneMarkers[rand.Intn(len(timeZoneMarkers))],
		Address:        "地址" + GenerateRandomID(10, 5),
	}
}

func GenerateRandomWorkline() *domain.Workline {
	return &domain.Workline{
		Name:                "工作线" + GenerateRandomID(3, 3),
		IsOverlapAcceptable: rand.Intn(2) == 0,
	}
}

var calendarLabelColors = []string{"#e57373", "#64b5f6", "#81c784", "#ffd54f", "#ba68c8"}

func GenerateRandomShiftType(isWorkingShift bool) *domain.ShiftType {
	return &domain.ShiftType{
		Name:               "班次类型" + GenerateRandomID(3, 3),
		CalendarLabelColor: calendarLabelColors[rand.Intn(len(calendarLabelColors))],
		IsWorkingShift:     isWorkingShift,
	}
}

func GenerateRandomVacancy(tradingPointID int64) *domain.Vacancy {
	return &domain.Vacancy{
		TradingPointID: tradingPointID,
		JobTitle:       "岗位" + GenerateRandomID(3, 3),
		Description:    "岗位描述" + GenerateRandomID(20, 10),
		CostPerHour:    float64(rand.Intn(200)+50) / 10,
	}
}

var weekDayMnemocodes = []string{
	domain.DayInfoMonday, domain.DayInfoTuesday, domain.DayInfoWednesday,
	domain.DayInfoThursday, domain.DayInfoFriday, domain.DayInfoSaturday, domain.DayInfoSunday,
}

// GenerateRandomTimetableTemplate 随机生成一个通过了跨字段校验的模板。
func GenerateRandomTimetableTemplate(tradingPointID int64, shiftTypeID int64, worklineID *int64) *domain.TimetableTemplate {
	template := &domain.TimetableTemplate{
		TradingPointID:     tradingPointID,
		Name:               "排班模板" + GenerateRandomID(3, 3),
		ApplyTypeMnemocode: domain.ApplyTypeWeekDays,
	}

	if rand.Intn(2) == 0 {
		length := int32(rand.Intn(7) + 1)
		template.ApplyTypeMnemocode = domain.ApplyTypeDaysOnOff
		template.DaysOnOffLength = &length
		template.StartingPointDateFix = fmt.Sprintf("2024-%02d-%02d", rand.Intn(12)+1, rand.Intn(28)+1)
	}

	var cellCount int
	if template.ApplyTypeMnemocode == domain.ApplyTypeWeekDays {
		cellCount = rand.Intn(7) + 1
	} else {
		cellCount = rand.Intn(int(*template.DaysOnOffLength)) + 1
	}

	// 打乱候选的日助记码，保证同一模板内不重复
	var dayPool []string
	if template.ApplyTypeMnemocode == domain.ApplyTypeWeekDays {
		dayPool = append([]string{}, weekDayMnemocodes...)
	} else {
		for i := int32(1); i <= *template.DaysOnOffLength; i++ {
			dayPool = append(dayPool, fmt.Sprintf("%s%d", domain.DayInfoCyclePrefix, i))
		}
	}
	rand.Shuffle(len(dayPool), func(i, j int) {
		dayPool[i], dayPool[j] = dayPool[j], dayPool[i]
	})

	template.Cells = make([]domain.TimetableTemplateCell, cellCount)
	for i := 0; i < cellCount; i++ {
		template.Cells[i] = domain.TimetableTemplateCell{
			DayInfoMnemocode: dayPool[i],
			TimeFrom:         fmt.Sprintf("%02d:%02d:00", rand.Intn(24), rand.Intn(60)),
			DurationMinutes:  int32(rand.Intn(600) + 60),
			ShiftTypeID:      shiftTypeID,
			WorklineID:       worklineID,
		}
	}

	return template
}
