// Package sample builds a demonstration lesson-plan template with go-docx.
// It exercises every block kind the extractor recognises.
package sample

import (
	"fmt"

	"github.com/dgallion1/docslot/internal/parser"
	"github.com/fumiama/go-docx"
)

var lessons = [][2]string{
	{"词法基础", "名词单复数与冠词"},
	{"词法基础", "代词"},
	{"句法基础", "Be动词与实义动词"},
	{"句法基础", "There be 句型"},
	{"时态进阶", "一般现在时"},
	{"时态进阶", "一般过去时"},
	{"阶段测评", "综合复习与测验"},
	{"阅读技巧", "信息提取与细节定位"},
}

// Lesson returns a fresh lesson-plan template. Content cells and the
// paragraphs under each heading are left empty for filling.
func Lesson() *docx.Docx {
	d := docx.New().WithDefaultTheme()

	d.AddParagraph().Justification("center").AddText("七年级英语阶段成长规划").Size("32").Bold()

	info := d.AddTable(3, 4, 0, nil)
	infoLabels := [][]string{
		{"学生姓名", "", "年级", ""},
		{"在读学校", "", "任课老师", ""},
		{"规划阶段", "", "培养方向", ""},
	}
	for i, row := range infoLabels {
		for j, label := range row {
			p := info.TableRows[i].TableCells[j].AddParagraph().Justification("center")
			if label != "" {
				p.AddText(label).Bold()
			}
		}
	}
	d.AddParagraph()

	heading(d, 1, "一、学情分析")
	d.AddParagraph().AddText("1. 性格特点：").Bold()
	d.AddParagraph()
	d.AddParagraph().AddText("2. 现有基础：").Bold()
	d.AddParagraph()

	heading(d, 1, "二、课程规划")
	plan := d.AddTable(len(lessons)+1, 4, 0, nil)
	for j, h := range []string{"次序", "模块", "核心内容", "难度"} {
		plan.TableRows[0].TableCells[j].AddParagraph().Justification("center").AddText(h).Bold()
	}
	for i, l := range lessons {
		cells := plan.TableRows[i+1].TableCells
		cells[0].AddParagraph().Justification("center").AddText(fmt.Sprintf("第%d次", i+1))
		cells[1].AddParagraph().AddText(l[0])
		cells[2].AddParagraph().AddText(l[1])
		cells[3].AddParagraph()
	}

	heading(d, 1, "三、课堂练习")
	heading(d, 2, "基础训练")
	d.AddParagraph()
	heading(d, 2, "拓展训练")
	d.AddParagraph()

	heading(d, 1, "四、课后反思")
	d.AddParagraph()

	heading(d, 1, "五、参考答案")
	d.AddParagraph()

	d.AddParagraph().Justification("right").AddText("规划师/教师：").Bold()
	return d
}

func heading(d *docx.Docx, level int, text string) {
	d.AddParagraph().Style(fmt.Sprintf("Heading%d", level)).AddText(text)
}

// Write saves the sample template to path.
func Write(path string) error {
	return parser.Wrap(Lesson(), "sample.docx").Save(path)
}
