package input

import (
	"context"
	"os"

	"git.fiblab.net/general/common/v2/mongoutil"
	"github.com/tsinghua-fib-lab/idmsim/utils/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/yaml.v2"
)

// Input 输入数据
// 功能：存储仿真所需的所有输入数据
// 说明：包含地图、初始agent集合与场景数据，支持从文件或数据库加载
type Input struct {
	Map      *Map
	Agents   []*Agent
	Scenario *Scenario
}

// Init 加载数据
// 功能：根据配置初始化并加载所有输入数据
// 参数：c-配置对象
// 返回：加载完成的输入数据指针
// 算法说明：
// 1. 数据库连接：如果配置了MongoDB则建立连接
// 2. 地图加载：文件（YAML）优先，否则从MongoDB集合加载车道文档
// 3. agent加载：同上
// 4. 场景加载：可选项，单文档集合或YAML文件
// 5. 数据验证：agent ID去重，起始车道必须存在于地图中
// 说明：这是数据加载的主入口，加载失败直接panic
func Init(c config.Config) (res *Input) {
	var client *mongo.Client
	if c.Input.URI != "" {
		client = mongoutil.NewClient(c.Input.URI)
		defer client.Disconnect(context.Background())
	}

	res = &Input{
		Map:    &Map{},
		Agents: make([]*Agent, 0),
	}

	// 地图
	if c.Input.Map.File != "" {
		loadYamlFile(c.Input.Map.File, res.Map)
	} else {
		res.Map.Lanes = mustFindAll[Lane](client, c.Input.Map)
	}
	if len(res.Map.Lanes) == 0 {
		log.Panic("no lanes in map input")
	}

	// agent
	if c.Input.Agents.File != "" {
		var agents struct {
			Agents []*Agent `yaml:"agents"`
		}
		loadYamlFile(c.Input.Agents.File, &agents)
		res.Agents = agents.Agents
	} else {
		res.Agents = mustFindAll[Agent](client, c.Input.Agents)
	}

	// 场景（可选）
	if c.Input.Scenario != nil {
		res.Scenario = &Scenario{}
		if c.Input.Scenario.File != "" {
			loadYamlFile(c.Input.Scenario.File, res.Scenario)
		} else {
			coll := mongoutil.GetMongoColl(client, *c.Input.Scenario)
			if err := coll.FindOne(context.Background(), bson.D{}).Decode(res.Scenario); err != nil {
				log.Panicf("failed to load scenario from %s.%s: %v",
					c.Input.Scenario.DB, c.Input.Scenario.Col, err)
			}
		}
	}

	// 数据验证
	laneIDs := make(map[int32]struct{}, len(res.Map.Lanes))
	for _, l := range res.Map.Lanes {
		if _, ok := laneIDs[l.ID]; ok {
			log.Panicf("lanes have duplicated ids %d, please check data", l.ID)
		}
		laneIDs[l.ID] = struct{}{}
	}
	agentIDs := make(map[int32]struct{}, len(res.Agents))
	for _, a := range res.Agents {
		if _, ok := agentIDs[a.ID]; ok {
			log.Panicf("agents have duplicated ids %d, please check data", a.ID)
		}
		agentIDs[a.ID] = struct{}{}
		if _, ok := laneIDs[a.LaneID]; !ok {
			log.Panicf("agent %d starts on unknown lane %d", a.ID, a.LaneID)
		}
	}
	if len(res.Agents) == 0 {
		log.Error("no valid agents to simulate, please check data")
	}
	return
}

// loadYamlFile 从YAML文件加载数据
// 参数：path-文件路径，out-目标对象
func loadYamlFile(path string, out any) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Panicf("failed to read input file %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		log.Panicf("failed to parse input file %s: %v", path, err)
	}
}

// mustFindAll 从MongoDB集合中加载全部文档（泛型函数）
// 参数：client-MongoDB客户端，inputPath-输入路径配置
// 返回：加载的文档数组
// 说明：提供统一的数据加载接口，加载失败直接panic
func mustFindAll[T any](client *mongo.Client, inputPath config.InputPath) []*T {
	if client == nil {
		log.Panicf("no mongodb uri but %s.%s has no file path", inputPath.DB, inputPath.Col)
	}
	log.Infof("start fetching from %s.%s", inputPath.DB, inputPath.Col)
	coll := mongoutil.GetMongoColl(client, inputPath)
	cursor, err := coll.Find(context.Background(), bson.D{})
	if err != nil {
		log.Panicf("failed to query %s.%s: %v", inputPath.DB, inputPath.Col, err)
	}
	var docs []*T
	if err := cursor.All(context.Background(), &docs); err != nil {
		log.Panicf("failed to decode %s.%s: %v", inputPath.DB, inputPath.Col, err)
	}
	log.Infof("finish fetching from %s.%s", inputPath.DB, inputPath.Col)
	return docs
}
