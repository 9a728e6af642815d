// Package lexicon 存放只读的中英文对照表与固定列定义。
// 所有表在进程启动时初始化一次，运行期间不允许修改。
package lexicon

// Role 角色列名（来源表中的布尔标记列）。
type Role string

const (
	RoleMaster       Role = "Master Student"
	RoleDoctoral     Role = "Doctoral Student"
	RolePostDoc      Role = "PostDoc"
	RoleRA           Role = "Research Assistant"
	RoleCompetition  Role = "Competition"
	RoleSummerSchool Role = "Summer School"
	RoleConference   Role = "Conference"
	RoleWorkshop     Role = "Workshop"
)

// RoleOrder 英文职位标题的固定拼接顺序。
var RoleOrder = []Role{
	RoleMaster,
	RoleDoctoral,
	RolePostDoc,
	RoleRA,
	RoleCompetition,
	RoleSummerSchool,
	RoleConference,
	RoleWorkshop,
}

// AbbrevOrder 缩写生成的固定检查顺序，注意 Conference 在 Summer School 之前。
var AbbrevOrder = []Role{
	RoleMaster,
	RoleDoctoral,
	RolePostDoc,
	RoleRA,
	RoleCompetition,
	RoleConference,
	RoleSummerSchool,
	RoleWorkshop,
}

// Subject 学科列名。
type Subject string

const (
	SubjectPhysicalGeo Subject = "Physical_Geo"
	SubjectHumanGeo    Subject = "Human_Geo"
	SubjectUrban       Subject = "Urban"
	SubjectGIS         Subject = "GIS"
	SubjectRS          Subject = "RS"
	SubjectGNSS        Subject = "GNSS"
)

// SubjectOrder 群消息标签中的学科展示顺序。
var SubjectOrder = []Subject{
	SubjectPhysicalGeo,
	SubjectHumanGeo,
	SubjectGIS,
	SubjectUrban,
	SubjectRS,
	SubjectGNSS,
}

// LabelColumns 入库 Label_ 列的固定顺序，与展示顺序不同。
var LabelColumns = []Subject{
	SubjectPhysicalGeo,
	SubjectHumanGeo,
	SubjectUrban,
	SubjectGIS,
	SubjectRS,
	SubjectGNSS,
}

// RequiredColumns 必填列，缺任意一列视为信息不完整。
var RequiredColumns = []string{
	"Source",
	"Deadline",
	"Country_CN",
	"University_CN",
	"University_EN",
	"Direction",
}

// Jobs 职位/缩写 → 中文名称。
var Jobs = map[string]string{
	"MSc":                "硕士",
	"MA":                 "硕士",
	"PhD":                "博士",
	"RA":                 "研究助理",
	"Master Student":     "硕士研究生",
	"Doctoral Student":   "博士研究生",
	"PostDoc":            "博士后",
	"Research Assistant": "研究助理",
	"Competition":        "竞赛",
	"Summer School":      "暑期学校",
	"Conference":         "学术会议",
	"Workshop":           "研讨会",
}

// Subjects 学科列名 → 中文名称。
var Subjects = map[Subject]string{
	SubjectPhysicalGeo: "自然地理学",
	SubjectHumanGeo:    "人文地理学",
	SubjectGIS:         "地理信息科学",
	SubjectUrban:       "城市规划",
	SubjectRS:          "遥感",
	SubjectGNSS:        "测绘学",
}

// CountryEN 根据中文国名查询英文国名；未收录时返回空串。
func CountryEN(countryCN string) string {
	return Countries[countryCN]
}

// Countries 中文国名 → 英文国名。
var Countries = map[string]string{
	"几内亚":         "Guinea",
	"几内亚比绍":       "Guinea-Bissau",
	"土耳其":         "Turkey",
	"土库曼斯坦":       "Turkmenistan",
	"也门":          "Yemen",
	"马尔代夫":        "Maldives",
	"马耳他":         "Malta",
	"马达加斯加":       "Madagascar",
	"马来西亚":        "Malaysia",
	"马里":          "Mali",
	"马拉维":         "Malawi",
	"马绍尔群岛":       "Marshall Islands",
	"不丹":          "Bhutan",
	"厄瓜多尔":        "Ecuador",
	"厄立特里亚":       "Eritrea",
	"牙买加":         "Jamaica",
	"比利时":         "Belgium",
	"瓦努阿图":        "Vanuatu",
	"日本":          "Japan",
	"中国":          "China",
	"中非":          "Central African Republic",
	"冈比亚":         "Gambia",
	"贝宁":          "Benin",
	"毛里求斯":        "Mauritius",
	"毛里塔尼亚":       "Mauritania",
	"丹麦":          "Denmark",
	"乌干达":         "Uganda",
	"乌克兰":         "Ukraine",
	"乌拉圭":         "Uruguay",
	"乌兹别克斯坦":      "Uzbekistan",
	"文莱":          "Brunei",
	"巴巴多斯":        "Barbados",
	"巴布亚新几内亚":     "Papua New Guinea",
	"巴西":          "Brazil",
	"巴拉圭":         "Paraguay",
	"巴林":          "Bahrain",
	"巴哈马":         "Bahamas",
	"巴拿马":         "Panama",
	"巴勒斯坦":        "State of Palestine",
	"巴基斯坦":        "Pakistan",
	"以色列":         "Israel",
	"古巴":          "Cuba",
	"布基纳法索":       "Burkina Faso",
	"布隆迪":         "Burundi",
	"东帝汶":         "Timor-Leste",
	"卡塔尔":         "Qatar",
	"卢旺达":         "Rwanda",
	"卢森堡":         "Luxembourg",
	"乍得":          "Chad",
	"白俄罗斯":        "Belarus",
	"印度":          "India",
	"印度尼西亚":       "Indonesia",
	"立陶宛":         "Lithuania",
	"尼日尔":         "Niger",
	"尼日利亚":        "Nigeria",
	"尼加拉瓜":        "Nicaragua",
	"尼泊尔":         "Nepal",
	"加纳":          "Ghana",
	"加拿大":         "Canada",
	"加蓬":          "Gabon",
	"圣马力诺":        "San Marino",
	"圣文森特和格林纳丁斯":  "Saint Vincent and the Grenadines",
	"圣多美和普林西比":    "Sao Tome and Principe",
	"圣基茨和尼维斯":     "Saint Kitts and Nevis",
	"圣卢西亚":        "Saint Lucia",
	"圭亚那":         "Guyana",
	"吉布提":         "Djibouti",
	"吉尔吉斯斯坦":      "Kyrgyzstan",
	"老挝":          "Laos",
	"亚美尼亚":        "Armenia",
	"西班牙":         "Spain",
	"列支敦士登":       "Liechtenstein",
	"北马其顿共和国":     "Macedonia",
	"刚果民主共和国":     "Democratic Republic of the Congo",
	"刚果共和国":       "Republic of the Congo",
	"伊拉克":         "Iraq",
	"伊朗":          "Iran",
	"危地马拉":        "Guatemala",
	"匈牙利":         "Hungary",
	"多米尼加共和国":     "Dominican Republic",
	"多米尼克":        "Dominica",
	"多哥":          "Togo",
	"冰岛":          "Iceland",
	"汤加":          "Tonga",
	"安哥拉":         "Angola",
	"安提瓜和巴布达":     "Antigua and Barbuda",
	"安道尔":         "Andorra",
	"约旦":          "Jordan",
	"赤道几内亚":       "Equatorial Guinea",
	"芬兰":          "Finland",
	"克罗地亚":        "Croatia",
	"苏丹":          "Sudan",
	"苏里南":         "Suriname",
	"利比亚":         "Libya",
	"利比里亚":        "Liberia",
	"伯利兹":         "Belize",
	"佛得角":         "Cape Verde",
	"希腊":          "Greece",
	"沙特阿拉伯":       "Saudi Arabia",
	"阿尔及利亚":       "Algeria",
	"阿尔巴尼亚":       "Albania",
	"阿拉伯联合酋长国":    "United Arab Emirates",
	"阿根廷":         "Argentina",
	"阿曼":          "Oman",
	"阿富汗":         "Afghanistan",
	"阿塞拜疆":        "Azerbaijan",
	"纳米比亚":        "Namibia",
	"坦桑尼亚":        "Tanzania",
	"拉脱维亚":        "Latvia",
	"英国":          "United Kingdom",
	"肯尼亚":         "Kenya",
	"罗马尼亚":        "Romania",
	"帕劳":          "Palau",
	"图瓦卢":         "Tuvalu",
	"委内瑞拉":        "Venezuela",
	"所罗门群岛":       "Solomon Islands",
	"法国":          "France",
	"波兰":          "Poland",
	"波斯尼亚和黑塞哥维那":  "Bosnia and Herzegovina",
	"孟加拉国":        "Bangladesh",
	"玻利维亚":        "Bolivia",
	"挪威":          "Norway",
	"南苏丹共和国":      "The Republic of South Sudan",
	"南非":          "South Africa",
	"柬埔寨":         "Cambodia",
	"哈萨克斯坦":       "Kazakhstan",
	"科威特":         "Kuwait",
	"科特迪瓦":        "Cote d'Ivoire",
	"科摩罗":         "Comoros",
	"保加利亚":        "Bulgaria",
	"俄罗斯":         "Russia",
	"叙利亚":         "Syria",
	"美国":          "United States of America",
	"洪都拉斯":        "Honduras",
	"津巴布韦":        "Zimbabwe",
	"突尼斯":         "Tunisia",
	"泰国":          "Thailand",
	"埃及":          "Egypt",
	"埃塞俄比亚":       "Ethiopia",
	"莱索托":         "Lesotho",
	"莫桑比克":        "Mozambique",
	"荷兰":          "Netherlands",
	"格林纳达":        "Grenada",
	"格鲁吉亚":        "Georgia",
	"索马里":         "Somalia",
	"哥伦比亚":        "Colombia",
	"哥斯达黎加":       "Costa Rica",
	"特立尼达和多巴哥":    "Trinidad and Tobago",
	"秘鲁":          "Peru",
	"爱尔兰":         "Ireland",
	"爱沙尼亚":        "Estonia",
	"海地":          "Haiti",
	"捷克":          "The Czech Republic",
	"基里巴斯":        "Kiribati",
	"菲律宾":         "Philippines",
	"萨尔瓦多":        "El Salvador",
	"萨摩亚":         "Samoa",
	"密克罗尼西亚联邦":    "The Federated States of Micronesia",
	"梵蒂冈":         "Vatican City State",
	"塔吉克斯坦":       "Tajikistan",
	"越南":          "Vietnam",
	"博茨瓦纳":        "Botswana",
	"斯里兰卡":        "Sri Lanka",
	"斯威士兰":        "Swaziland",
	"斯洛文尼亚":       "Slovenia",
	"斯洛伐克":        "Slovakia",
	"葡萄牙":         "Portugal",
	"韩国":          "South Korea",
	"朝鲜":          "North Korea",
	"斐济":          "Fiji",
	"喀麦隆":         "Cameroon",
	"黑山":          "Montenegro",
	"智利":          "Chile",
	"奥地利":         "Austria",
	"缅甸":          "Burma",
	"瑞士":          "Switzerland",
	"瑞典":          "Sweden",
	"瑙鲁":          "Nauru",
	"蒙古":          "Mongolia",
	"新加坡":         "Singapore",
	"新西兰":         "New Zealand",
	"意大利":         "Italy",
	"塞内加尔":        "Senegal",
	"塞尔维亚":        "Republic of Serbia",
	"塞舌尔":         "Republic of Seychelles",
	"塞拉利昂":        "Sierra Leone",
	"塞浦路斯":        "Cyprus",
	"墨西哥":         "Mexico",
	"黎巴嫩":         "Lebanon",
	"德国":          "Germany",
	"摩尔多瓦":        "Moldova",
	"摩纳哥":         "Monaco",
	"摩洛哥":         "Morocco",
	"澳大利亚":        "Australia",
	"赞比亚":         "Zambia",
	"纽埃":          "Niue",
	"库克群岛":        "Cook Islands",
}

// Abbrev 角色 → 缩写。硕士的 MSc/MA 取决于学科组合，不在此表内。
var Abbrev = map[Role]string{
	RoleDoctoral:     "PhD",
	RolePostDoc:      "PostDoc",
	RoleRA:           "RA",
	RoleCompetition:  "Competition",
	RoleConference:   "Conference",
	RoleSummerSchool: "Summer School",
	RoleWorkshop:     "Workshop",
}
